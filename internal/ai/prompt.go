package ai

import "fmt"

var difficultyInstructions = map[string]string{
	"easy":   "straightforward recall questions",
	"medium": "questions requiring understanding and application",
	"hard":   "complex questions requiring analysis and synthesis",
}

const systemPrompt = "You are a helpful quiz generator that creates well-formatted multiple choice questions."

// questionMarker is the sanity check applied to model output before it is
// handed to the parser.
const questionMarker = `"""QUESTION"""`

// BuildPrompt renders the generation prompt. The output format contract in
// the prompt matches what the quiztext parser consumes, so generated text
// flows straight into the same pipeline as uploads.
func BuildPrompt(notes string, numQuestions int, difficulty string) string {
	instruction, ok := difficultyInstructions[difficulty]
	if !ok {
		instruction = "medium difficulty questions"
	}
	return fmt.Sprintf(`You are a quiz generator. Generate %d multiple choice questions from the following study notes.

Study Notes:
%s

Requirements:
- Create %s
- Each question must have exactly 4 choices (A, B, C, D)
- Only one correct answer per question
- Questions should test understanding of the material
- Use the EXACT format below (this is critical):

"""QUESTION"""
[Your question here]
"""CHOICES"""
A: [First choice]
B: [Second choice]
C: [Third choice]
D: [Fourth choice]
"""ANSWER"""
[Correct letter only, e.g., A]

Generate %d questions following this exact format. Do not include any other text or explanations.`,
		numQuestions, notes, instruction, numQuestions)
}
