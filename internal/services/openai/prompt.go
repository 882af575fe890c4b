package openai

// TitleDescriptionPrompt instructs the model to normalize both fields.
const TitleDescriptionPrompt = "Normalize YouTube metadata. Return compact JSON with keys title and description."

// TitleOnlyPrompt instructs the model to normalize the title only. The
// response keeps both keys so the parser stays the same.
const TitleOnlyPrompt = "Normalize YouTube metadata title. Return compact JSON with keys title and description."
