package engine

// LLM prompt templates: data only, no logic.

// PromptBase is the shared instruction header for every generation request.
// Args: persona, content type, language, template.
const PromptBase = `Role: AI Content Specialist. Persona: %s. Target: %s (%s). Template: %s.
Constraints: strict Markdown output, video context only.`

// PromptSegment restricts analysis to a time range. Args: start, end.
const PromptSegment = `Segment: analyze only %s to %s of the video.`

// PromptBranding names the agency and client. Args: agency, client.
const PromptBranding = `Brand: %s. Client: %s.`

// PromptUploadStrict keeps the model inside the attached media.
const PromptUploadStrict = `Use ONLY what is seen and heard in the attached video. Do not add outside facts, statistics or links.`

// PromptUploadEnhanced allows web lookups on top of the attached media.
const PromptUploadEnhanced = `Base the piece on the attached video. You may use Google Search to verify claims and add current context; cite what you use.`

// PromptRemoteKnown describes a remote video whose metadata resolved.
// Args: url, title, channel, content type.
const PromptRemoteKnown = `URL: %s
Video Title: "%s"
Channel: "%s"

Task: Analyze the content associated with this video. Provide a highly detailed and engaging %s. Use the metadata provided to structure your response accurately.`

// PromptRemoteUnknown describes a bare remote reference. Args: url, content type.
const PromptRemoteUnknown = `URL: %s

Task: Locate this video and reconstruct what it covers, then write a highly detailed and engaging %s about it.
Never state that you cannot access, watch or open the video. Work from whatever you can find about it.`

// PromptRemoteStrict narrows research for remote references in strict mode.
const PromptRemoteStrict = `Research only this video itself (its page, description, transcript and coverage of it). Do not expand into the wider topic.`

// PromptRemoteEnhanced widens research for remote references.
const PromptRemoteEnhanced = `Use Google Search to find the video and enrich the piece with current, relevant context; cite what you use.`

// socialAdaptPrompt rewrites a generated piece for one social platform.
// Args: platform, platform rules, text.
const socialAdaptPrompt = `Rewrite the post below for %s.
%s
Keep the facts and the language of the original. Output ONLY the post text. No explanation, no quotes.

Post:
%s`

// SocialPlatformRules holds per-platform style constraints for socialAdaptPrompt.
var SocialPlatformRules = map[string]string{
	"linkedin": "Professional tone, short paragraphs, a hook in the first line, 3-5 hashtags at the end.",
	"twitter":  "At most 280 characters in total, punchy, 1-2 hashtags, no thread numbering.",
	"medium":   "Article form with a title line and Markdown section headings.",
}
