package config

// Default phrase tables for the teaching-span detector. Hand-tuned against
// the sermon corpus; matched case-insensitively.

var defaultTeachingStartPatterns = []string{
	`\bturn with me to\b`,
	`\bturn to\b`,
	`\bopen your bibles?\b`,
	`\btoday we'?re (going to |gonna )?look\b`,
	`\blet'?s pray\b`,
	`\bfather god\b`,
	`\blord we\b`,
	`\bthe lord spoke\b`,
	`\bin (genesis|exodus|leviticus|numbers|deuteronomy|joshua|judges|ruth|` +
		`samuel|kings|chronicles|ezra|nehemiah|esther|job|psalms?|proverbs?|` +
		`ecclesiastes|song of solomon|isaiah|jeremiah|lamentations|ezekiel|daniel|` +
		`hosea|joel|amos|obadiah|jonah|micah|nahum|habakkuk|zephaniah|haggai|` +
		`zechariah|malachi|matthew|mark|luke|john|acts|romans|corinthians|` +
		`galatians|ephesians|philippians|colossians|thessalonians|timothy|titus|` +
		`philemon|hebrews|james|peter|jude|revelation) \d`,
}

var defaultWorshipPatterns = []string{
	`\bwelcome\b`,
	`\bgood (morning|evening)\b`,
	`\blet'?s stand\b`,
	`\bworship team\b`,
	`\bannouncements?\b`,
	`\boffering\b`,
	`\bnext week\b`,
	`\bthank you for coming\b`,
	`\blet'?s worship\b`,
	`\bsing with me\b`,
	`\bpraise team\b`,
	`\bband\b`,
	`\bsign up\b`,
	`\bevent\b`,
	`\bpotluck\b`,
	`\bladies'? group\b`,
	`\bmen'?s group\b`,
	`\byouth group event\b`,
	`\bvacation bible school\b`,
}

// Closing phrases are plain lowercase substrings, scanned backward within
// the detector's lookback window.
var defaultClosingPhrases = []string{
	"thank you for coming",
	"dismissed",
	"have a great week",
	"see you next",
	"god bless you all",
	"let's close in prayer",
}
