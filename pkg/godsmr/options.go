package godsmr

import "fmt"

// Vocabulary selects the object table telegrams are decoded against.
type Vocabulary string

const (
	// VocabularyDSMR4 is the base revision table.
	VocabularyDSMR4 Vocabulary = "dsmr4"
	// VocabularyDSMR5 extends the base table with instantaneous voltages.
	VocabularyDSMR5 Vocabulary = "dsmr5"
	// VocabularyEMUCS is the Belgian profile on top of the fifth revision.
	VocabularyEMUCS Vocabulary = "emucs"
)

// ParseVocabulary maps a user supplied name onto a known vocabulary.
func ParseVocabulary(name string) (Vocabulary, error) {
	switch Vocabulary(name) {
	case VocabularyDSMR4, VocabularyDSMR5, VocabularyEMUCS:
		return Vocabulary(name), nil
	}
	return "", fmt.Errorf("unknown vocabulary %q (want dsmr4, dsmr5 or emucs)", name)
}

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Vocabulary to decode against. Empty selects the fifth revision.
	Vocabulary Vocabulary
}

func (opts AnalyzeOptions) vocabulary() (Vocabulary, error) {
	if opts.Vocabulary == "" {
		return VocabularyDSMR5, nil
	}
	return ParseVocabulary(string(opts.Vocabulary))
}
