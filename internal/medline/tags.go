package medline

import "strings"

// Field tags of the MEDLINE display format. Each is the fixed-width tag
// followed by the dash separator.
const (
	tagPMC             = "PMC -"
	tagPMID            = "PMID-"
	tagDate            = "DEP -"
	tagTitle           = "TI  -"
	tagAbstract        = "AB  -"
	tagLanguage        = "LA  -"
	tagPublicationType = "PT  -"
	tagJournalType     = "JT  -"
	tagSource          = "SO  -"
	tagAuthor          = "FAU -"
)

// fieldStartTags is the closed set of tags that end a multi-line field.
// A line in a title, abstract or source block that starts with none of these
// is a continuation line.
var fieldStartTags = []string{
	"AB  -",
	"AD  -",
	"AID -",
	"AU  -",
	"AUID-",
	"CN  -",
	"DEP -",
	"DP  -",
	"FAU -",
	"FIR -",
	"GR  -",
	"IP  -",
	"IR  -",
	"IS  -",
	"JT  -",
	"LA  -",
	"LID -",
	"MID -",
	"OAB -",
	"OABL-",
	"PG  -",
	"PHST-",
	"PMC -",
	"PMID-",
	"PT  -",
	"SO  -",
	"TA  -",
	"TI  -",
	"VI  -",
}

func startsField(line string) bool {
	for _, tag := range fieldStartTags {
		if strings.HasPrefix(line, tag) {
			return true
		}
	}
	return false
}

// tagValue strips the tag and surrounding whitespace from a tagged line.
func tagValue(line, tag string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, tag))
}

// UnknownLanguage is the name reported for codes missing from the table.
const UnknownLanguage = "Unknown"

// languages maps NLM 3-letter language codes to names.
// https://www.nlm.nih.gov/bsd/language_table.html
var languages = map[string]string{
	"afr": "Afrikaans",
	"alb": "Albanian",
	"amh": "Amharic",
	"ara": "Arabic",
	"arm": "Armenian",
	"aze": "Azerbaijani",
	"ben": "Bengali",
	"bos": "Bosnian",
	"bul": "Bulgarian",
	"cat": "Catalan",
	"chi": "Chinese",
	"cze": "Czech",
	"dan": "Danish",
	"dut": "Dutch",
	"eng": "English",
	"epo": "Esperanto",
	"est": "Estonian",
	"fin": "Finnish",
	"fre": "French",
	"geo": "Georgian",
	"ger": "German",
	"gla": "Scottish Gaelic",
	"gre": "Greek, Modern",
	"heb": "Hebrew",
	"hin": "Hindi",
	"hrv": "Croatian",
	"hun": "Hungarian",
	"ice": "Icelandic",
	"ind": "Indonesian",
	"ita": "Italian",
	"jpn": "Japanese",
	"kin": "Kinyarwanda",
	"kor": "Korean",
	"lat": "Latin",
	"lav": "Latvian",
	"lit": "Lithuanian",
	"mac": "Macedonian",
	"mal": "Malayalam",
	"mao": "Maori",
	"may": "Malay",
	"mul": "Multiple languages",
	"nor": "Norwegian",
	"per": "Persian, Iranian",
	"pol": "Polish",
	"por": "Portuguese",
	"pus": "Pushto",
	"rum": "Romanian, Rumanian, Moldovan",
	"rus": "Russian",
	"san": "Sanskrit",
	"slo": "Slovak",
	"slv": "Slovenian",
	"spa": "Spanish",
	"srp": "Serbian",
	"swe": "Swedish",
	"tha": "Thai",
	"tur": "Turkish",
	"ukr": "Ukrainian",
	"und": "Undetermined",
	"urd": "Urdu",
	"vie": "Vietnamese",
	"wel": "Welsh",
}

// LanguageName resolves a 3-letter language code.
func LanguageName(code string) string {
	if name, ok := languages[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return UnknownLanguage
}

// publicationTypes collapses joined "PT" values into short labels.
var publicationTypes = map[string]string{
	"Journal Article":             "Article",
	"Journal Article Case Report": "Case Report",
	"Journal Article Editorial":   "Editorial",
	"Journal Article Letter":      "Letter",
	"Journal Article News":        "News",
	"Journal Article Review":      "Review",
}

// PublicationType returns the short label for a joined publication type,
// or the value unchanged when it has none.
func PublicationType(joined string) string {
	if label, ok := publicationTypes[joined]; ok {
		return label
	}
	return joined
}
