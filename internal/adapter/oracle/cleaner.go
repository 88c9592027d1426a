package oracle

import (
	"encoding/json"
	"regexp"
	"strings"
)

// cleanResponse normalizes a raw oracle message into its best-effort JSON
// object: markdown fences are stripped, the first balanced object is
// extracted from mixed content, and common formatting slips are repaired.
// The result may still be invalid JSON; the strict parser decides.
func cleanResponse(response string) string {
	response = removeMarkdownFences(response)
	response = extractJSONObject(response)
	if isValidJSON(response) {
		return response
	}
	return fixCommonJSONIssues(response)
}

func removeMarkdownFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// extractJSONObject finds the first balanced {...} in mixed content.
func extractJSONObject(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	braceCount := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				return response[start : i+1]
			}
		}
	}
	return response
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

func fixCommonJSONIssues(response string) string {
	response = trailingCommaRe.ReplaceAllString(response, "$1")
	response = strings.ReplaceAll(response, "'", "\"")
	if start := strings.Index(response, "{"); start > 0 {
		response = response[start:]
	}
	return response
}

func isValidJSON(response string) bool {
	var tmp any
	return json.Unmarshal([]byte(response), &tmp) == nil
}
