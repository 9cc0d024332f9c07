// Package prompt builds the backend-agnostic instruction text for the two
// supported tasks. All functions are pure: same input, same output, no I/O.
package prompt

import "fmt"

// AutoDetect is the source language sentinel meaning the backend should work
// out the language itself.
const AutoDetect = "auto"

// detectedPhrase replaces the sentinel in prompt text, so the literal "auto"
// never reaches the backend.
const detectedPhrase = "the detected language"

// TranslatorPreamble returns the system role for the translate task, used as
// the system message on backends that have a system channel.
func TranslatorPreamble() string {
	return "You are a professional translator. Only output the translated text, nothing else."
}

// ExplainerPreamble returns the system role for the explain task.
func ExplainerPreamble() string {
	return "You are a language teacher who explains text concisely in Markdown."
}

// Translation builds the instruction for translating text. The full role
// instruction is part of the prompt body, so it works as-is on backends
// without a system channel.
func Translation(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are a professional translator. Translate the following text from %s to %s.
Only output the translated text, nothing else. Do not include explanations or notes.

Text to translate:
%s`, sourceName(sourceLang), targetLang, text)
}

// Explanation builds the instruction for explaining text linguistically.
// The formatting rules (heading set, omit-if-empty, no filler placeholders)
// are instructions for the backend to honor; nothing parses its output
// locally.
func Explanation(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are a language teacher. Explain the following text, written in %s, to a learner who speaks %s.
Write the explanation in %s, in Markdown, using exactly these headings where they apply:
## Meaning
## Grammar
## Vocabulary
## Nuance
Omit a heading entirely if you have nothing to say under it. Never write filler placeholders such as "N/A" or "None".

Text to explain:
%s`, sourceName(sourceLang), targetLang, targetLang, text)
}

func sourceName(lang string) string {
	if lang == AutoDetect {
		return detectedPhrase
	}

	return lang
}
