package core

import (
	"fmt"
	"strings"
)

// noInfoSentinel is the company summary used when the search stage returns no
// usable candidate text.
const noInfoSentinel = "No recent information found."

// buildSearchPrompt asks the model to gather current facts about the company.
// The web-search tool is enabled on the same request, so the model answers
// from live results rather than internal knowledge.
func buildSearchPrompt(company string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find the 3 most recent and relevant pieces of information about %s. Focus on:\n", company)
	b.WriteString("- Recent news, announcements, or press releases\n")
	b.WriteString("- Product launches or updates\n")
	b.WriteString("- Earnings reports or financial news\n")
	b.WriteString("- Upcoming events or conferences\n\n")
	b.WriteString("Return only the most current and relevant information in a concise format.")
	return b.String()
}

// prospectCount derives the number of emails to draft from the comma-delimited
// name list. Blank entries between commas are not counted.
func prospectCount(names string) int {
	n := 0
	for _, name := range strings.Split(names, ",") {
		if strings.TrimSpace(name) != "" {
			n++
		}
	}
	return n
}

// buildEmailPrompt embeds the extracted company info and the raw prospect
// lists into the generation instruction. The formatting contract (one email
// per prospect, word limit, sign-off, per-prospect template) lives entirely in
// this text; the model is trusted to follow it.
func buildEmailPrompt(company, companyInfo, names, titles string, hasScreenshot bool) string {
	count := prospectCount(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on this current information about %s:\n\n", company)
	b.WriteString(companyInfo)
	if hasScreenshot {
		b.WriteString("\n\nA screenshot of a recent company post is attached; treat its content as an additional verified finding.")
	}
	b.WriteString("\n\nGenerate personalized cold outbound emails for these prospects:\n")
	fmt.Fprintf(&b, "- Names: %s\n", names)
	fmt.Fprintf(&b, "- Job titles: %s\n\n", titles)
	b.WriteString("Follow these guidelines:\n")
	b.WriteString("1. Use the current company information above\n")
	fmt.Fprintf(&b, "2. Create %d emails (one for each prospect)\n", count)
	b.WriteString("3. Keep each email under 100 words\n")
	b.WriteString("4. Make them casual and human-sounding\n")
	b.WriteString("5. Reference specific details from the company info\n")
	b.WriteString("6. Sign each email as \"Gage\"\n\n")
	b.WriteString("Format the output as:\n")
	b.WriteString("### **Prospect #1: [name], [title]**\n")
	b.WriteString("Source: [relevant source from the info above]\n\n")
	b.WriteString("```\n[subject line]\n```\n\n")
	b.WriteString("```\n[email body]\n```\n\n")
	b.WriteString("### **Prospect #2: [name], [title]**\n")
	b.WriteString("[repeat format for every prospect]")
	return b.String()
}
