package ai

// DefaultRemixType is used when the requested style is unknown or absent.
// The fallback is silent: an unrecognized style is not an input error.
const DefaultRemixType = "professional"

// prompts maps remix styles to the instruction prepended to the user's content.
var prompts = map[string]string{
	"tweet":        "Convert this into an engaging Twitter thread with 3-5 tweets:",
	"linkedin":     "Rewrite as a professional LinkedIn post:",
	"email":        "Write a professional email based on:",
	"blog":         "Expand into a blog post with headers:",
	"summary":      "Summarize this in 2-3 sentences:",
	"bullets":      "Convert this into a clear bullet-point list:",
	"casual":       "Rewrite this in a casual, friendly tone:",
	"formal":       "Rewrite this in a formal, academic tone:",
	"professional": "Rewrite this in a polished, professional tone:",
	"ad":           "Write a short advertisement based on:",
	"story":        "Turn this into a short narrative story:",
	"smalltalk":    "Turn this into light small-talk conversation starters:",
	"salespitch":   "Write a persuasive sales pitch based on:",
	"thanks":       "Write a sincere thank-you note based on:",
	"followup":     "Write a polite follow-up message based on:",
	"apology":      "Write a sincere apology message based on:",
	"reminder":     "Write a friendly reminder message based on:",
	"agenda":       "Turn this into a structured meeting agenda:",
}

// ResolveRemixType normalizes a requested style, falling back to
// DefaultRemixType when it is not recognized.
func ResolveRemixType(remixType string) string {
	if _, ok := prompts[remixType]; ok {
		return remixType
	}
	return DefaultRemixType
}

// BuildPrompt composes the upstream instruction for a remix style and the
// user's content.
func BuildPrompt(remixType, content string) string {
	instruction, ok := prompts[remixType]
	if !ok {
		instruction = prompts[DefaultRemixType]
	}
	return instruction + "\n\n" + content
}
