package infringement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
)

func TestBuildPrompt_ContainsEveryInput(t *testing.T) {
	prompt := BuildPrompt(walmartPatent, walmart.Products)

	assert.Equal(t, SystemPrompt, prompt.System)
	assert.Contains(t, prompt.System, "patent analysis expert")
	assert.Contains(t, prompt.System, "JSON")

	assert.Contains(t, prompt.User, "Title: "+walmartPatent.Title)
	assert.Contains(t, prompt.User, "Abstract: "+walmartPatent.Abstract)
	assert.Contains(t, prompt.User,
		"Claim 1: A method comprising receiving an advertisement.\nClaim 2: The method of claim 1, further comprising a list.")
	for _, p := range walmart.Products {
		assert.Contains(t, prompt.User, "Name: "+p.Name+"\nDescription: "+p.Description)
	}
	assert.Contains(t, prompt.User, `Put top 2 products in "top_infringing_products"`)
	assert.Contains(t, prompt.User, "analysis_date as today's date")
	assert.Contains(t, prompt.User, `"overall_risk_assessment": string`)
}

func TestBuildPrompt_OrderAndDeterminism(t *testing.T) {
	first := BuildPrompt(walmartPatent, walmart.Products)
	second := BuildPrompt(walmartPatent, walmart.Products)
	assert.Equal(t, first, second)

	u := first.User
	assert.Less(t, strings.Index(u, "Claim 1:"), strings.Index(u, "Claim 2:"))
	assert.Less(t, strings.Index(u, "Walmart Shopping App"), strings.Index(u, "Walmart Pharmacy"))
	assert.Less(t, strings.Index(u, "PATENT:"), strings.Index(u, "PRODUCTS:"))
}

func TestBuildPrompt_NoEscaping(t *testing.T) {
	p := patent.Patent{Title: `Quote " and {brace}`, Abstract: "%s %d"}
	prompt := BuildPrompt(p, []company.Product{{Name: "A\nB", Description: "<x>"}})

	assert.Contains(t, prompt.User, `Title: Quote " and {brace}`)
	assert.Contains(t, prompt.User, "Abstract: %s %d")
	assert.Contains(t, prompt.User, "Name: A\nB\nDescription: <x>")
}

func TestBuildPrompt_EmptyLists(t *testing.T) {
	prompt := BuildPrompt(patent.Patent{Title: "T"}, nil)
	assert.Contains(t, prompt.User, "Claims:\n\n\nPRODUCTS:\n\n\nProvide")
}

//Personal.AI order the ending
