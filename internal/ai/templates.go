package ai

import "math/rand/v2"

// Canned response pools. One entry is picked at random so repeated
// greetings do not read like a broken record.
var (
	greetingTemplates = []string{
		"Hello! 👋 I'm your APS Mangla assistant. How can I help you with information about the school today?",
		"Hi there! 🏫 I'm here to help you with questions about APS Mangla. What would you like to know?",
		"Assalamualaikum! Welcome to APS Mangla's virtual assistant. I'm ready to help with your questions!",
	}

	farewellTemplates = []string{
		"Goodbye! Feel free to come back anytime if you have more questions about APS Mangla. 👋",
		"Thank you for using APS Mangla's assistant! Have a great day! 🌟",
		"Khuda hafiz! I'm always here if you need more help with school information. 📚",
	}

	noMatchTemplates = []string{
		"I don't have information about that specific topic yet. I'm focused on APS Mangla school information. You could ask about our principal, subjects, facilities, or other school-related matters.",
		"That's not something I know about yet. I specialize in APS Mangla information - try asking about teachers, classes, schedules, or school policies!",
		"I'm still learning! I don't have details about that, but I can help with APS Mangla school information. What else would you like to know about the school?",
	}

	unansweredQuestionTemplates = []string{
		"I don't have specific information about that question yet. I focus on APS Mangla school details like our principal, subjects, facilities, and policies. Is there something else about the school I can help with?",
		"That's not in my current knowledge base about APS Mangla. I can help with information about teachers, curriculum, school facilities, and general school information. What else would you like to know?",
		"I'm still building my knowledge about APS Mangla! I don't have details about that particular topic, but I can assist with questions about staff, subjects like ICS, school procedures, and more. How else can I help?",
	}
)

// Small-talk responses keyed by what the visitor asked about.
const (
	smallTalkHowAreYou = "I'm doing great, thank you for asking! I'm here and ready to help you with information about APS Mangla. What would you like to know? 😊"
	smallTalkWhatCanDo = "I can help you with information about APS Mangla! I know about our principal, subjects like ICS, school policies, schedules, and much more. Just ask me anything about the school! 🎓"
	smallTalkDefault   = "I'm specialized in providing information about APS Mangla. I can answer questions about staff, curriculum, facilities, admission procedures, and general school information. How can I assist you today? 📖"
)

const (
	followUpNoContext      = "I'm not sure what you're referring to. Could you please ask your question more specifically?"
	followUpLowConfidence  = "I wasn't very confident about my previous answer. Could you ask a more specific question about APS Mangla? I can help with information about our principal, subjects, facilities, and policies."
	internalErrorResponse  = "I apologize, but I encountered an error. Please try asking your question again."
	followUpExpandFallback = "I provided information about %q before. Is there something specific about APS Mangla you'd like to know more about? I can help with details about our principal, subjects, facilities, and school policies."
)

func pick(pool []string) string {
	return pool[rand.IntN(len(pool))]
}
