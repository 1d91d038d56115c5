package gemini

import "fmt"

// Labels the prompts demand and the parser looks for. The wording is part
// of the wire contract with the model: prompts and labels must stay in
// sync, and the frontend-facing cleanup assumes exactly these sections.
const (
	labelSanskrit = "Sanskrit Verse (Telugu Script):"
	labelVerse    = "Telugu Verse:"
	labelMeaning  = "Telugu Meaning:"

	labelPolishedVerse   = "Polished Telugu Verse:"
	labelPolishedMeaning = "Polished Telugu Meaning:"
	labelDescription     = "Description:"
)

const fetchPromptTmpl = `Provide Bhagavad Gita Chapter %d, Verse %d.
Provide the original Sanskrit verse transliterated into Telugu script.
Provide a basic Telugu translation of the verse.
Provide a basic Telugu meaning of the verse.

Strictly format as follows, with no extra text, introductions, or commentary outside these labels:
Sanskrit Verse (Telugu Script):
[Original Sanskrit Verse Text in Telugu Script]

Telugu Verse:
[Basic Telugu Verse Translation Text]

Telugu Meaning:
[Basic Telugu Meaning Text]
`

const enhancePromptTmpl = `Review the following Bhagavad Gita verse (Sanskrit in Telugu script), its basic Telugu translation, and its meaning.
Sanskrit Verse (Telugu Script): %s
Telugu Verse (Basic): %s
Telugu Meaning (Basic): %s

1. Polish the basic Telugu verse translation for clarity, correct grammar, and natural sentence flow. Ensure it aligns with the Sanskrit verse. Remove any markdown like asterisks (**) or notes in parentheses (...).
2. Polish the basic Telugu meaning for clarity, correct grammar, and natural sentence flow. Ensure it accurately reflects the verse's meaning. Remove any markdown like asterisks (**) or notes in parentheses (...).
3. Write a concise, engaging story or description in Telugu (2-4 sentences) that captures the essence and context of this verse. This description should help a reader understand the practical application or deeper meaning. Remove any markdown like asterisks (**) or notes in parentheses (...).

Strictly format the output as follows, with no extra text, introductions, or commentary outside these labels:
Polished Telugu Verse:
[Polished Telugu Verse Text]

Polished Telugu Meaning:
[Polished Telugu Meaning Text]

Description:
[Short Telugu Description/Story Text]
`

func fetchPrompt(chapter, verse int) string {
	return fmt.Sprintf(fetchPromptTmpl, chapter, verse)
}

func enhancePrompt(sanskrit, verseText, meaning string) string {
	return fmt.Sprintf(enhancePromptTmpl, sanskrit, verseText, meaning)
}
