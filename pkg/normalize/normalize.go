// Package normalize converts raw FAQ entries and natural-language queries
// into canonical records with deterministic identifiers.
//
// The one invariant that matters here is cleaning symmetry: Clean is the
// single text-cleaning function for both corpus load and query time. Any
// asymmetry between the two sides silently degrades similarity scores, so
// nothing in this module is allowed to clean text any other way.
package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/soundprediction/faqmatch/pkg/classify"
	"github.com/soundprediction/faqmatch/pkg/intent"
	"github.com/soundprediction/faqmatch/pkg/types"
)

// slugPrefix tags auto-generated FAQ entry identifiers.
const slugPrefix = "faq_"

// slugMaxLen caps the cleaned-question portion of an auto-generated id.
const slugMaxLen = 40

// RawEntry is an FAQ entry as it arrives from the corpus source, before
// normalization. QuestionID, Category and Keywords are optional.
type RawEntry struct {
	QuestionID string
	Category   string
	Question   string
	Answer     string
	Keywords   []string
}

// Clean lowercases text, replaces every character that is neither letter,
// digit nor underscore with a space, and collapses runs of whitespace into
// single spaces with no surrounding whitespace. Applied identically to FAQ
// text at load time and query text at query time.
func Clean(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SlugID derives a deterministic entry id from the question text: lowercase,
// non-alphanumeric runs collapsed to single underscores, trimmed and capped
// at 40 characters, with a fixed prefix. Same question text, same id.
func SlugID(question string) string {
	lower := strings.ToLower(question)
	var b strings.Builder
	b.Grow(len(lower))
	lastSep := true
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSep = false
		} else if !lastSep {
			b.WriteByte('_')
			lastSep = true
		}
	}
	slug := strings.Trim(b.String(), "_")
	if len(slug) > slugMaxLen {
		slug = slug[:slugMaxLen]
	}
	return slugPrefix + slug
}

// QueryID derives a stable numeric identifier from the raw, pre-cleaning
// query text: the first 8 hex digits of the MD5 of the input bytes. It is a
// pure function of the input, identical across process runs.
func QueryID(raw string) uint32 {
	sum := md5.Sum([]byte(raw))
	id, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 32)
	if err != nil {
		// Unreachable: 8 hex digits always parse into 32 bits.
		panic(err)
	}
	return uint32(id)
}

// QueryName formats the concept name for a query record.
func QueryName(raw string) string {
	return fmt.Sprintf("query_%08d", QueryID(raw))
}

// Normalizer builds canonical records, delegating category inference to the
// classifier when an entry or query does not carry one.
type Normalizer struct {
	classifier *classify.Classifier
}

// New creates a Normalizer. A nil classifier falls back to the default
// helpdesk tables.
func New(classifier *classify.Classifier) *Normalizer {
	if classifier == nil {
		classifier = classify.NewDefault()
	}
	return &Normalizer{classifier: classifier}
}

// EntryToRecord converts a raw FAQ entry into its canonical record and the
// metadata kept alongside the encoded entry for result reporting. Entries
// without a question are rejected; missing ids and categories are derived.
func (n *Normalizer) EntryToRecord(entry RawEntry) (types.CanonicalRecord, types.CandidateMetadata, error) {
	if strings.TrimSpace(entry.Question) == "" {
		return types.CanonicalRecord{}, types.CandidateMetadata{}, fmt.Errorf("entry %q: %w", entry.QuestionID, ErrMissingQuestion)
	}

	id := entry.QuestionID
	if id == "" {
		id = SlugID(entry.Question)
	}

	category := types.Category(entry.Category)
	if category == "" || !category.Valid() {
		category = n.classifier.Classify(Clean(entry.Question), "", "")
	}

	record := types.CanonicalRecord{
		ID:           id,
		Category:     category,
		QuestionText: Clean(entry.Question),
		AnswerText:   Clean(entry.Answer),
		KeywordsText: strings.Join(entry.Keywords, " "),
	}
	meta := types.CandidateMetadata{
		ID:       id,
		Category: category,
		Question: entry.Question,
		Answer:   entry.Answer,
	}
	return record, meta, nil
}

// QueryToRecord converts raw query text into an ephemeral canonical record.
// The extraction is advisory: its domain/action hints only break category
// ties when the cleaned text carries no signal, and its keywords replace
// the cleaned text as the keywords role only when present.
func (n *Normalizer) QueryToRecord(raw string, ext intent.Extraction) types.CanonicalRecord {
	cleaned := Clean(raw)
	keywords := ext.Keywords
	if keywords == "" {
		keywords = cleaned
	}
	return types.CanonicalRecord{
		ID:           "",
		Category:     n.classifier.Classify(cleaned, ext.Domain, ext.Action),
		QuestionText: cleaned,
		AnswerText:   "",
		KeywordsText: keywords,
	}
}
