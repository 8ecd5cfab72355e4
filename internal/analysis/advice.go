package analysis

import (
	"fmt"
	"strings"

	"nyaya/internal/domain"
)

// Template is the static set of steps and statutes for a legal category.
type Template struct {
	Steps []string
	Laws  []string
}

const limitationPeriodStep = "Pay attention to limitation periods for legal action"

var templates = map[domain.Category]Template{
	domain.CategoryFamily: {
		Steps: []string{
			"Document all relevant communications and agreements",
			"Consult with a family law specialist",
			"Consider mediation before litigation",
			"Gather all financial documents",
			"Understand your rights under family laws",
		},
		Laws: []string{
			"Hindu Marriage Act, 1955",
			"Indian Succession Act, 1925",
			"Protection of Women from Domestic Violence Act, 2005",
			"Guardians and Wards Act, 1890",
		},
	},
	domain.CategoryCriminal: {
		Steps: []string{
			"File an FIR at the nearest police station immediately",
			"Preserve all evidence related to the incident",
			"Consult with a criminal lawyer",
			"Cooperate with police investigation",
			"Keep records of all proceedings",
		},
		Laws: []string{
			"Indian Penal Code, 1860",
			"Code of Criminal Procedure, 1973",
			"Indian Evidence Act, 1872",
			"Protection of Women from Sexual Harassment Act, 2013",
		},
	},
	domain.CategoryCivil: {
		Steps: []string{
			"Send a legal notice to the other party",
			"Gather all relevant documents and evidence",
			"Attempt alternative dispute resolution",
			"File a civil suit if necessary",
			"Maintain detailed records",
		},
		Laws: []string{
			"Code of Civil Procedure, 1908",
			"Indian Contract Act, 1872",
			"Specific Relief Act, 1963",
			"Limitation Act, 1963",
		},
	},
	domain.CategoryProperty: {
		Steps: []string{
			"Verify property documents and titles",
			"Check for any encumbrances or disputes",
			"Consult with a property lawyer",
			"Register the property properly",
			"Maintain all transaction records",
		},
		Laws: []string{
			"Transfer of Property Act, 1882",
			"Registration Act, 1908",
			"Indian Stamp Act, 1899",
			"Real Estate Regulation Act, 2016",
		},
	},
	domain.CategoryEmployment: {
		Steps: []string{
			"Review your employment contract",
			"Document workplace incidents",
			"File complaints with appropriate authorities",
			"Seek legal consultation",
			"Understand your labor rights",
		},
		Laws: []string{
			"Industrial Disputes Act, 1947",
			"Minimum Wages Act, 1948",
			"Employees' Provident Fund Act, 1952",
			"Sexual Harassment of Women at Workplace Act, 2013",
		},
	},
	domain.CategoryConsumer: {
		Steps: []string{
			"File a complaint with consumer forum",
			"Gather purchase receipts and warranties",
			"Document all communications with seller",
			"Seek compensation for damages",
			"Know your consumer rights",
		},
		Laws: []string{
			"Consumer Protection Act, 2019",
			"Indian Contract Act, 1872",
			"Sale of Goods Act, 1930",
			"Competition Act, 2002",
		},
	},
}

// TemplateFor returns a copy of the template for category. General and
// unknown categories get the civil template.
func TemplateFor(category domain.Category) Template {
	t, ok := templates[category]
	if !ok {
		t = templates[domain.CategoryCivil]
	}
	return Template{
		Steps: append([]string(nil), t.Steps...),
		Laws:  append([]string(nil), t.Laws...),
	}
}

// Advise builds recommended steps and statutes for a situation. Steps derived
// from the extracted amounts and dates are appended after the template steps.
func Advise(category domain.Category, text string, info domain.ExtractedInfo) domain.AdviceResult {
	t := TemplateFor(category)

	steps := t.Steps
	if len(info.Amounts) > 0 {
		steps = append(steps, fmt.Sprintf(
			"The monetary value involved (%s) may affect the jurisdiction and court fees",
			strings.Join(info.Amounts, ", ")))
	}
	if len(info.Dates) > 0 {
		steps = append(steps, limitationPeriodStep)
	}

	return domain.AdviceResult{
		RecommendedSteps: steps,
		ApplicableLaws:   t.Laws,
		UrgencyLevel:     AssessUrgency(text, category),
	}
}
