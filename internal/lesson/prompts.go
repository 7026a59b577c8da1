package lesson

import (
	"strings"

	"github.com/jeanpaul/wortschatz/internal/i18n"
)

// Prompt templates. {language} is the learner's language by English name;
// the other placeholders are filled per call. Fields named *Tr must be
// written in {language}.
const (
	nounPrompt = `You are a German teacher. Analyse the German noun "{noun}".
Return its correct definite article (der, die or das), the noun itself with correct capitalisation,
its plural form with article, and its translation into {language}.
If the word is misspelled, correct it.`

	nounCasesPrompt = `You are a German teacher. For the noun "{article} {noun}", write one simple example
sentence for each grammatical case: Nominativ, Akkusativ, Dativ and Genitiv.
caseName is the German case name, sentenceDe the German sentence and sentenceTr its translation into {language}.`

	verbPrompt = `You are a German teacher. Conjugate the German verb "{verb}" in {category} / {subcategory}
for the pronouns ich, du, er/sie/es, wir, ihr, sie/Sie.
For each pronoun give the conjugated form, a short example sentence in German (exampleDe)
and its translation into {language} (exampleTr).`

	meaningsPrompt = `You are a German teacher. List the most common meanings of the German verb "{verb}",
including meanings with prefixes or prepositions where relevant.
For each meaning give the meaning in {language}, a German example sentence (exampleDe)
and its translation into {language} (exampleTr).`

	grammarTopicsPrompt = `You are a German teacher. List the essential German grammar topics for CEFR level {level}.
For each topic give a short stable id in lowercase ASCII, the title in {language} (titleTr),
the German title (titleDe) and a one-sentence description in {language}.`

	grammarExplanationPrompt = `You are a German teacher. Explain the German grammar topic "{titleDe}" ({titleTr})
for a learner at level {level}. Write the explanation in {language} using markdown with short sections and tables
where useful. Add at least four German example sentences with translations into {language}.`

	toolsListPrompt = `You are a German teacher. List the most important German {categoryName} (category id: {categoryId})
from level A1 to C1. For each give the word, its translation into {language}, its CEFR level
and a one-sentence description in {language} of when it is used.`

	toolDetailPrompt = `You are a German teacher. Explain the German word "{word}" from the category {categoryName} (level {level}).
Give its meaning in {language} (meaningTr), a markdown explanation in {language} of how it is used,
including the case it governs if any (usageTr), and at least four German example sentences with translations into {language}.`

	conversationPrompt = `You are a German teacher. Write a natural dialogue between Person A and Person B about "{topic}"
for a learner at level {level}. The dialogue should have about {turns} turns, alternating speakers and starting with A.
Use vocabulary and grammar appropriate for {level}. For every turn give the German text (textDe)
and its translation into {language} (textTr).{dialect}`

	extendPrompt = `You are a German teacher continuing a dialogue about "{topic}" for a learner at level {level}.
The learner is Person A and has just said: "{userInput}".
First correct the learner's sentence if needed and return it as a turn of Person A, then reply as Person B
with two or three turns that keep the conversation about "{topic}" going.
For every turn give the German text (textDe) and its translation into {language} (textTr).{dialect}`

	keywordsPrompt = `You are a German teacher. Extract the 8 to 12 most useful vocabulary items from the following German text.
For nouns include the article. Give the meaning of each in {language}.`

	chatSystemPrompt = `You are a friendly German tutor. The learner's language is {language}; explain in {language}
and use German for examples. The learner is studying this material:
German: {contextDe}
Translation: {contextTr}
Answer questions about it, quiz the learner when asked, and correct their German gently. Keep answers short.`

	austrianDialect = `
Write the German in Austrian colloquial German (Viennese expressions where natural).
For every turn also give ttsText: the same sentence in standard German spelling so a standard German
speech engine can pronounce it.`
)

func render(tmpl, locale string, pairs ...string) string {
	args := append([]string{"{language}", i18n.EnglishName(locale)}, pairs...)
	return strings.NewReplacer(args...).Replace(tmpl)
}

func dialect(austrian bool) string {
	if austrian {
		return austrianDialect
	}
	return ""
}

// turnsFor maps a conversation length to the number of turns requested.
func turnsFor(l ConvLength) string {
	switch l {
	case Short:
		return "6"
	case Long:
		return "16"
	default:
		return "10"
	}
}
