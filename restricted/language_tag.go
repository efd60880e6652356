package restricted

// IETFLanguageTag is a BCP-47 language subtag restricted to a closed
// allowlist, the same set the original implementation enumerates from the
// IANA Language Subtag Registry's common entries. Construction from an
// arbitrary string falls back to "en-us" when the value isn't recognized,
// rather than failing: every AMQP implementation is expected to understand
// at least en-US, so a decode of an unrecognized tag degrades gracefully
// instead of rejecting the whole message.
type IETFLanguageTag struct {
	tag string
}

// DefaultIETFLanguageTag is "en-us", the tag every AMQP implementation is
// expected to understand.
var DefaultIETFLanguageTag = IETFLanguageTag{tag: "en-us"}

// NewIETFLanguageTag validates value against the allowlist, returning
// DefaultIETFLanguageTag if it isn't a recognized tag.
func NewIETFLanguageTag(value string) IETFLanguageTag {
	if _, ok := validLanguageTags[value]; ok {
		return IETFLanguageTag{tag: value}
	}
	return DefaultIETFLanguageTag
}

// String returns the tag's symbol text.
func (t IETFLanguageTag) String() string { return t.tag }

var validLanguageTags = buildLanguageTagSet([...]string{
	"aa", "ab", "ae", "af", "ak", "am", "an", "ar", "ar-ae", "ar-bh", "ar-dz", "ar-eg", "ar-iq",
	"ar-jo", "ar-kw", "ar-lb", "ar-ly", "ar-ma", "ar-om", "ar-qa", "ar-sa", "ar-sy", "ar-tn",
	"ar-ye", "as", "av", "ay", "az", "ba", "be", "bg", "bh", "bi", "bm", "bn", "bo", "br", "bs",
	"ca", "ce", "ch", "co", "cr", "cs", "cu", "cv", "cy", "da", "de", "de-at", "de-ch", "de-de",
	"de-li", "de-lu", "div", "dv", "dz", "ee", "el", "en", "en-au", "en-bz", "en-ca", "en-cb",
	"en-gb", "en-ie", "en-jm", "en-nz", "en-ph", "en-tt", "en-us", "en-za", "en-zw", "eo", "es",
	"es-ar", "es-bo", "es-cl", "es-co", "es-cr", "es-do", "es-ec", "es-es", "es-gt", "es-hn",
	"es-mx", "es-ni", "es-pa", "es-pe", "es-pr", "es-py", "es-sv", "es-us", "es-uy", "es-ve", "et",
	"eu", "fa", "ff", "fi", "fj", "fo", "fr", "fr-be", "fr-ca", "fr-ch", "fr-fr", "fr-lu", "fr-mc",
	"fy", "ga", "gd", "gl", "gn", "gu", "gv", "ha", "he", "hi", "ho", "hr", "hr-ba", "hr-hr", "ht",
	"hu", "hy", "hz", "ia", "id", "ie", "ig", "ii", "ik", "in", "io", "is", "it", "it-ch", "it-it",
	"iu", "iw", "ja", "ji", "jv", "jw", "ka", "kg", "ki", "kj", "kk", "kl", "km", "kn", "ko",
	"kok", "kr", "ks", "ku", "kv", "kw", "ky", "kz", "la", "lb", "lg", "li", "ln", "lo", "ls",
	"lt", "lu", "lv", "mg", "mh", "mi", "mk", "ml", "mn", "mo", "mr", "ms", "ms-bn", "ms-my", "mt",
	"my", "na", "nb", "nd", "ne", "ng", "nl", "nl-be", "nl-nl", "nn", "no", "nr", "ns", "nv", "ny",
	"oc", "oj", "om", "or", "os", "pa", "pi", "pl", "ps", "pt", "pt-br", "pt-pt", "qu", "qu-bo",
	"qu-ec", "qu-pe", "rm", "rn", "ro", "ru", "rw", "sa", "sb", "sc", "sd", "se", "se-fi", "se-no",
	"se-se", "sg", "sh", "si", "sk", "sl", "sm", "sn", "so", "sq", "sr", "sr-ba", "sr-sp", "ss",
	"st", "su", "sv", "sv-fi", "sv-se", "sw", "sx", "syr", "ta", "te", "tg", "th", "ti", "tk",
	"tl", "tn", "to", "tr", "ts", "tt", "tw", "ty", "ug", "uk", "ur", "us", "uz", "ve", "vi", "vo",
	"wa", "wo", "xh", "yi", "yo", "za", "zh", "zh-cn", "zh-hk", "zh-mo", "zh-sg", "zh-tw", "zu",
})

func buildLanguageTagSet(tags [284]string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
