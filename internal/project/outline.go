package project

import "strings"

var outlineSteps = map[Language][2]string{
	Python: {"2. Import necessary libraries.", "3. Define functions and logic."},
	R:      {"2. Load required R packages.", "3. Implement statistical or data operations."},
	HTML:   {"2. Create basic HTML structure.", "3. Add required page elements."},
}

// Outline returns the fixed algorithm text for a language. The code itself
// is not inspected. Unknown languages get the generic steps only.
func Outline(_ string, lang Language) string {
	steps := []string{"1. Start the program."}
	if middle, ok := outlineSteps[lang]; ok {
		steps = append(steps, middle[0], middle[1])
	}
	steps = append(steps, "4. Process/render outputs.", "5. End the program.")
	return strings.Join(steps, "\n")
}
