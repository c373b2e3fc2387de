package screening

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed prompts/gathering.md
var gatheringTemplate string

//go:embed prompts/questions.md
var questionsTemplate string

//go:embed prompts/questions_strict.md
var questionsStrictTemplate string

//go:embed prompts/chat.md
var chatTemplate string

func buildGatheringPrompt(record *CandidateRecord, field Field, lang Language) string {
	known := make([]string, 0, len(requiredFields))
	for _, f := range requiredFields {
		if v := record.Get(f); v != "" {
			known = append(known, fmt.Sprintf("%s: %s", f, v))
		}
	}
	knownBlock := "None yet"
	if len(known) > 0 {
		knownBlock = strings.Join(known, "\n")
	}

	prompt := strings.ReplaceAll(gatheringTemplate, "{{KNOWN}}", knownBlock)
	prompt = strings.ReplaceAll(prompt, "{{FIELD}}", string(field))
	return strings.ReplaceAll(prompt, "{{LANGUAGE}}", languageInstruction(lang))
}

func buildQuestionsPrompt(stack []string, lang Language, strict bool) string {
	template := questionsTemplate
	if strict {
		template = questionsStrictTemplate
	}
	prompt := strings.ReplaceAll(template, "{{TECH_STACK}}", strings.Join(stack, ", "))
	return strings.ReplaceAll(prompt, "{{LANGUAGE}}", languageInstruction(lang))
}

func buildChatPrompt(record *CandidateRecord, history []Turn, userInput string, lang Language) string {
	candidate := make([]string, 0, len(requiredFields))
	for _, f := range requiredFields {
		if v := record.Get(f); v != "" {
			candidate = append(candidate, fmt.Sprintf("%s: %s", f, v))
		}
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Text))
	}

	prompt := strings.ReplaceAll(chatTemplate, "{{CANDIDATE}}", strings.Join(candidate, "\n"))
	prompt = strings.ReplaceAll(prompt, "{{HISTORY}}", strings.Join(lines, "\n"))
	prompt = strings.ReplaceAll(prompt, "{{USER_INPUT}}", userInput)
	return strings.ReplaceAll(prompt, "{{LANGUAGE}}", languageInstruction(lang))
}

func languageInstruction(lang Language) string {
	if lang == Hindi {
		return "Respond in Hindi."
	}
	return ""
}

// canned holds the fixed, non-model-generated texts for one language. They are
// also the fallbacks whenever a model call yields nothing usable.
type canned struct {
	greeting       string
	ask            map[Field]string
	invalid        map[Field]string
	confirmStack   string
	questionsIntro string
	fallback       string
	ended          string
	summaryTitle   string
	sentimentLabel string
	chatReady      string
	storeWarning   string
	noDetails      string
	goodbyes       []string
	affirmations   []string
	negations      []string
}

var cannedEnglish = canned{
	greeting: "Hello! I'm TalentScout, your AI Hiring Assistant. I'll collect a few details for initial screening. Shall we begin?",
	ask: map[Field]string{
		FieldName:       "Please share your full name.",
		FieldEmail:      "Please share your email address.",
		FieldPhone:      "Please share your phone number.",
		FieldExperience: "How many total years of experience do you have?",
		FieldPosition:   "What position are you applying for?",
		FieldLocation:   "What is your current location?",
		FieldTechStack:  "Please list your tech stack (e.g., Python, Django, React).",
	},
	invalid: map[Field]string{
		FieldEmail:      "That doesn't look like a valid email address.",
		FieldPhone:      "A phone number should contain 7 to 15 digits.",
		FieldExperience: "That many years of experience seems unlikely. Please give a number up to 60.",
	},
	confirmStack:   "Thanks! You've listed the following technologies: %s. Is that correct?",
	questionsIntro: "Here are a few technical questions based on your tech stack:",
	fallback:       "I'm sorry, could you please clarify that?",
	ended:          "The session has ended. Thank you!",
	summaryTitle:   "Summary of your details",
	sentimentLabel: "Your mood estimate",
	chatReady:      "I'm now ready to answer any questions you have! Feel free to ask me about technical topics, career advice, or anything else!",
	storeWarning:   "Note: your summary could not be saved.",
	noDetails:      "No details provided.",
	goodbyes: []string{
		"Thank you for your time today! Wishing you the best of luck.",
		"Thanks for chatting with TalentScout. We'll be in touch soon!",
		"It was great speaking with you. Have a wonderful day!",
	},
	affirmations: []string{"yes", "correct", "confirm", "right", "sure", "yep", "yeah"},
	negations:    []string{"no", "nope", "nah", "not", "wrong", "incorrect"},
}

var cannedHindi = canned{
	greeting: "नमस्ते! मैं TalentScout हूँ, आपका AI हायरिंग असिस्टेंट। प्रारंभिक स्क्रीनिंग के लिए मैं कुछ जानकारी लूँगा। क्या हम शुरू करें?",
	ask: map[Field]string{
		FieldName:       "कृपया अपना पूरा नाम बताएं।",
		FieldEmail:      "कृपया अपना ईमेल पता बताएं।",
		FieldPhone:      "कृपया अपना फ़ोन नंबर बताएं।",
		FieldExperience: "आपके पास कुल कितने वर्षों का अनुभव है?",
		FieldPosition:   "आप किस पद के लिए आवेदन कर रहे हैं?",
		FieldLocation:   "आपका वर्तमान स्थान क्या है?",
		FieldTechStack:  "कृपया अपनी टेक स्टैक सूचीबद्ध करें (जैसे Python, Django, React)।",
	},
	invalid: map[Field]string{
		FieldEmail:      "यह एक मान्य ईमेल पता नहीं लगता।",
		FieldPhone:      "फ़ोन नंबर में 7 से 15 अंक होने चाहिए।",
		FieldExperience: "इतने वर्षों का अनुभव असंभव लगता है। कृपया 60 तक की संख्या दें।",
	},
	confirmStack:   "धन्यवाद! आपने ये तकनीकें बताई हैं: %s। क्या यह सही है?",
	questionsIntro: "आपकी टेक स्टैक के आधार पर कुछ तकनीकी प्रश्न:",
	fallback:       "क्षमा करें, क्या आप कृपया स्पष्ट कर सकते हैं?",
	ended:          "सत्र समाप्त हो गया है। धन्यवाद!",
	summaryTitle:   "आपके विवरण का सारांश",
	sentimentLabel: "आपके मूड का अनुमान",
	chatReady:      "अब मैं आपके किसी भी प्रश्न का उत्तर देने के लिए तैयार हूँ!",
	storeWarning:   "नोट: आपका सारांश सहेजा नहीं जा सका।",
	noDetails:      "कोई विवरण नहीं दिया गया।",
	goodbyes: []string{
		"आज आपके समय के लिए धन्यवाद! आपको शुभकामनाएं।",
		"TalentScout से बात करने के लिए धन्यवाद। हम जल्द संपर्क करेंगे!",
	},
	affirmations: []string{"yes", "correct", "confirm", "haan", "han", "sahi", "theek", "हाँ", "सही", "ठीक"},
	negations:    []string{"no", "nahi", "nahin", "galat", "नहीं", "गलत"},
}

func textsFor(lang Language) canned {
	if lang == Hindi {
		return cannedHindi
	}
	return cannedEnglish
}

// DefaultGoodbyeKeywords end the session when found as a case-insensitive
// substring of a user turn, in any phase.
var DefaultGoodbyeKeywords = []string{
	"bye", "goodbye", "thank you", "thanks", "exit", "quit", "see you",
	"alvida", "dhanyavad", "shukriya", "अलविदा", "धन्यवाद", "शुक्रिया",
}
