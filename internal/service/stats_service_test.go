package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nyaya/internal/domain"
	"nyaya/internal/service"
	"nyaya/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	mockRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(mockRepo)

	expected := &domain.Stats{
		TotalCases:      12,
		CasesByCategory: map[string]int{"family": 7, "criminal": 5},
		AverageRating:   4.25,
	}
	mockRepo.On("GetStats", mock.Anything).Return(expected, nil)

	result, err := svc.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_GetStats_Error(t *testing.T) {
	mockRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(mockRepo)
	mockRepo.On("GetStats", mock.Anything).Return(nil, errors.New("db error"))

	result, err := svc.GetStats(context.Background())
	assert.Error(t, err)
	assert.Nil(t, result)
}
