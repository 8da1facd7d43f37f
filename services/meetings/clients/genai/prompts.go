package genai

import "strings"

const transcribePrompt = "Generate a full transcript of this meeting audio file."

const summarizePrompt = "Summarize this meeting transcript into:\n" +
	"SUMMARY: key discussion points (5-6 bullet points)\n" +
	"ACTION_ITEMS: tasks or follow-ups.\n" +
	"Return plain text with these sections clearly marked."

const (
	HeaderSummary     = "SUMMARY:"
	HeaderActionItems = "ACTION_ITEMS:"
)

var sectionHeaders = []string{HeaderSummary, HeaderActionItems}

// ExtractSection returns the text following header up to the next known
// header, trimmed. An absent header yields the empty string.
func ExtractSection(out, header string) string {
	idx := strings.Index(out, header)
	if idx == -1 {
		return ""
	}

	rest := out[idx+len(header):]
	for _, h := range sectionHeaders {
		if h == header {
			continue
		}
		if j := strings.Index(rest, h); j != -1 {
			rest = rest[:j]
		}
	}

	return strings.TrimSpace(rest)
}
