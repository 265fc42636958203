package infringement

import (
	"fmt"
	"strings"

	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
)

// SystemPrompt is the fixed instruction sent with every analysis.
const SystemPrompt = "You are a patent analysis expert. Analyze potential patent infringement " +
	"objectively and thoroughly. Focus on technical similarities and specific claim elements. " +
	"Format your response as JSON."

// userPromptTemplate takes, in order: title, abstract, claim lines, product
// lines.  Values are interpolated verbatim.
const userPromptTemplate = `Analyze if the products potentially infringes the patent:

PATENT:
Title: %s
Abstract: %s

Claims:
%s

PRODUCTS:
%s

Provide a detailed analysis in JSON format with:
1. Overall match score (0-100)
2. Analysis of each potentially infringed claim
3. Specific matching features
4. Detailed explanation of potential infringement
5. Infringement likelihood (High, Medium, Low)
6. Put top 2 products in "top_infringing_products"
7. analysis_date as today's date

Response format:
{
    "top_infringing_products": [{
        "product_name": string,
        "match_score": number,
        "infringement_likelihood": string,
        "relevant_claims": string[],
        "explanation": string,
        "specific_features": string[]
    }],
    "overall_risk_assessment": string
}
`

// Prompt is the system/user message pair for one completion.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the analysis prompt for p against products.  It is a
// pure function of its inputs.
func BuildPrompt(p patent.Patent, products []company.Product) Prompt {
	productLines := make([]string, 0, len(products))
	for _, prod := range products {
		productLines = append(productLines, fmt.Sprintf("Name: %s\nDescription: %s", prod.Name, prod.Description))
	}

	return Prompt{
		System: SystemPrompt,
		User: fmt.Sprintf(userPromptTemplate,
			p.Title,
			p.Abstract,
			strings.Join(p.ClaimLines(), "\n"),
			strings.Join(productLines, "\n"),
		),
	}
}

//Personal.AI order the ending
