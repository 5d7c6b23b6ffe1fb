package chat

import (
	"strings"
	"unicode"
)

// Rule maps a keyword match to a canned answer. Multi-word keywords match as
// a phrase. Single words match a whole word, or a word prefix when the
// keyword is at least prefixMin letters long ("consult" matches
// "consultation", "hi" does not match "this").
type Rule struct {
	Name     string
	Keywords []string
	Response string
}

const prefixMin = 5

func (r Rule) matches(words []string, phrase string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(k, " ") {
			if strings.Contains(phrase, k) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == k || (len(k) >= prefixMin && strings.HasPrefix(w, k)) {
				return true
			}
		}
	}
	return false
}

// tokenize lowercases msg and splits it on anything but letters, digits and
// apostrophes.
func tokenize(msg string) ([]string, string) {
	words := strings.FieldsFunc(strings.ToLower(msg), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return words, " " + strings.Join(words, " ") + " "
}

// DefaultRules is evaluated top to bottom; the first match wins. Emergencies
// come first so "emergency appointment" is not answered as a booking query.
var DefaultRules = []Rule{
	{
		Name:     "emergency",
		Keywords: []string{"emergency", "urgent", "severe pain", "bleeding", "can't breathe", "cannot breathe"},
		Response: "If this is a medical emergency, please call your local emergency number or go to the nearest emergency department right away. For urgent surgical concerns you can also call the clinic directly.",
	},
	{
		Name:     "appointment",
		Keywords: []string{"appointment", "book", "booking", "schedule", "consult", "visit"},
		Response: "You can book a consultation through the appointment form on this site or by messaging us on WhatsApp. Share your preferred date and a short description of your concern and our team will confirm a slot.",
	},
	{
		Name:     "cost",
		Keywords: []string{"cost", "costs", "price", "fee", "fees", "charge", "charges", "insurance", "cashless", "expensive"},
		Response: "Costs depend on the procedure, the hospital and your insurance cover. Please book a consultation so the surgeon can assess you and our team can share an estimate and help with insurance paperwork.",
	},
	{
		Name:     "hernia",
		Keywords: []string{"hernia"},
		Response: "Most hernias are repaired with minimally invasive laparoscopic or robotic surgery using a mesh. Many patients go home the same or next day and return to light activity within a week or two.",
	},
	{
		Name:     "gallbladder",
		Keywords: []string{"gallbladder", "gall bladder", "gallstone", "cholecystectomy"},
		Response: "Symptomatic gallstones are usually treated by laparoscopic removal of the gallbladder. It is a keyhole procedure with a short hospital stay and most people resume normal routines within one to two weeks.",
	},
	{
		Name:     "piles",
		Keywords: []string{"piles", "hemorrhoid", "haemorrhoid", "fissure", "fistula"},
		Response: "Piles, fissures and fistulas can often be treated with minimally invasive or laser procedures. A short examination in clinic helps decide the right option for you.",
	},
	{
		Name:     "minimally-invasive",
		Keywords: []string{"laparoscop", "keyhole", "robotic", "minimally invasive"},
		Response: "Laparoscopic and robotic surgery use small incisions, which usually means less pain, smaller scars and a faster recovery than open surgery.",
	},
	{
		Name:     "recovery",
		Keywords: []string{"recovery", "recover", "after surgery", "post op", "diet", "resume"},
		Response: "Recovery depends on the procedure. Most keyhole surgeries allow walking the same day, a light diet within hours and a return to desk work in about a week. Your surgeon will give you a personalised plan.",
	},
	{
		Name:     "hours",
		Keywords: []string{"timing", "hours", "open", "address", "location", "where", "directions"},
		Response: "Our clinic timings and address are listed on the contact page. Please call ahead to confirm availability on weekends and holidays.",
	},
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hi", "hey", "good morning", "good evening", "namaste"},
		Response: "Hello! I can answer general questions about our surgical services, recovery and booking a consultation. How can I help you today?",
	},
	{
		Name:     "thanks",
		Keywords: []string{"thank", "thanks", "thx"},
		Response: "You're welcome! Feel free to ask anything else or book a consultation whenever you're ready.",
	},
}

// DefaultResponse is used when no rule matches.
const DefaultResponse = "Thank you for your question. For advice specific to your condition, please book a consultation with our surgeon through the appointment form or contact the clinic directly."

// Match returns the answer of the first rule matching msg, or DefaultResponse.
func Match(rules []Rule, msg string) string {
	words, phrase := tokenize(msg)
	for _, r := range rules {
		if r.matches(words, phrase) {
			return r.Response
		}
	}
	return DefaultResponse
}
