package ai

// analysisPrompt asks the model for the fixed response shape the
// normalizer expects. The model sees the image as an attached URL part.
const analysisPrompt = `Analyze the attached image. Provide:
- A short description of the image.
- Any emotions or scene context.
- Tags/keywords that describe it.

Format your response as JSON with the following structure:
{
  "description": "A detailed description of what's in the image",
  "emotions": "Emotions or scene context detected in the image",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"]
}`
