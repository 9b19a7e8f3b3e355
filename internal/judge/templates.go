package judge

import (
	"fmt"

	"google.golang.org/genai"
)

const systemInstruction = `
You are a website promotion monitor. You are given the trimmed text content of
a retailer's website (homepage plus promotion-related subpages).

Decide whether the site is currently advertising a promotion, sale, discount,
or special offer. If it is, summarize the promotion concisely, including
specific details such as product type, discount percentage, or expiration date
when they are present in the text.

Base your answer strictly on the provided text. Do not guess at promotions
that are not mentioned.
`

const userPromptTemplate = `Site URL: %s

Content Sample:
%s`

func buildUserPrompt(site string, text string) string {
	return fmt.Sprintf(userPromptTemplate, site, text)
}

// responseSchema forces Gemini to answer with exactly the two fields the
// pipeline consumes.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"has_promotion": {
				Type:        genai.TypeBoolean,
				Description: "True if the text describes an active promotion, sale, or offer.",
			},
			"promotion_text": {
				Type:        genai.TypeString,
				Description: "Concise summary of the promotion, or an empty string if none.",
			},
		},
		Required: []string{"has_promotion", "promotion_text"},
	}
}
