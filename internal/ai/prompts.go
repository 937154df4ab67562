package ai

import "fmt"

// System instructions for the rephrasing calls. The model is only ever
// allowed to restate facts pulled from the knowledge base.
const (
	questionSystemPrompt = `You are a helpful assistant for APS Mangla school.
A student asked a question and we found a relevant answer in our database.
Convert the factual answer into a natural, conversational response.
Keep it friendly, informative, and student-appropriate.
IMPORTANT: Provide a COMPLETE answer with all relevant details from the database.
If the answer mentions subjects, list ALL of them. If it mentions requirements, include ALL requirements.
Use ONLY the provided information - don't add external facts.`

	reverseLookupSystemPrompt = `You are a helpful assistant for APS Mangla school.
A student asked about a person or entity, and we found information about them in our database.
Provide a natural, conversational response using ONLY the provided fact.
Make it sound friendly and informative, as if you're a knowledgeable school representative.`

	followUpSystemPrompt = `You are an APS Mangla school assistant. A student asked a follow-up question like 'and?' or 'what else?'
about a previous topic. Based on the original question and previous answer, provide a complete,
comprehensive response that includes all relevant information.

If the previous answer was incomplete, expand it with related details.
If you can't provide more information, acknowledge that and suggest other school topics they might ask about.`
)

func questionUserPrompt(input, answer string) string {
	return fmt.Sprintf("Student question: %q\nDatabase answer: %q\n\nPlease rephrase this into a complete, natural, conversational response for the student. Include ALL details mentioned in the database answer.", input, answer)
}

func reverseLookupUserPrompt(input, answer string) string {
	return fmt.Sprintf("Student asked: %q\nFact from database: %q\n\nPlease provide a natural, conversational response using only this information.", input, answer)
}

func followUpUserPrompt(lastQuestion, lastAnswer, input string) string {
	return fmt.Sprintf("Original question: %q\nPrevious answer: %q\nFollow-up: %q\n\nPlease provide a complete, expanded answer that addresses what they might be looking for.", lastQuestion, lastAnswer, input)
}
