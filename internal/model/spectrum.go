// Package model defines the core domain models used throughout the application.
package model

// SpectrumRecord is one line of an IR spectrum table.
type SpectrumRecord struct {
	Mode      int
	Frequency float64 // cm-1
	Intensity float64 // km/mol
}

// Spectrum maps mode indices to spectrum records and remembers the order in
// which indices were first seen. A nil *Spectrum behaves as empty.
type Spectrum struct {
	index   map[int]int
	records []SpectrumRecord
}

// NewSpectrum creates an empty spectrum.
func NewSpectrum() *Spectrum {
	return &Spectrum{index: make(map[int]int)}
}

// Put stores a record. Re-using a mode index replaces the stored values but
// keeps the position of the first occurrence.
func (s *Spectrum) Put(rec SpectrumRecord) {
	if pos, ok := s.index[rec.Mode]; ok {
		s.records[pos] = rec
		return
	}
	s.index[rec.Mode] = len(s.records)
	s.records = append(s.records, rec)
}

// Get returns the record for a mode index.
func (s *Spectrum) Get(mode int) (SpectrumRecord, bool) {
	if s == nil {
		return SpectrumRecord{}, false
	}
	pos, ok := s.index[mode]
	if !ok {
		return SpectrumRecord{}, false
	}
	return s.records[pos], true
}

// Len returns the number of records.
func (s *Spectrum) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Records returns a copy of the records in first-seen order.
func (s *Spectrum) Records() []SpectrumRecord {
	if s == nil {
		return nil
	}
	out := make([]SpectrumRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Remove deletes the record for a mode index and reports whether it existed.
func (s *Spectrum) Remove(mode int) bool {
	if s == nil {
		return false
	}
	pos, ok := s.index[mode]
	if !ok {
		return false
	}
	s.records = append(s.records[:pos], s.records[pos+1:]...)
	delete(s.index, mode)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].Mode] = i
	}
	return true
}

// Clone returns an independent copy that can be consumed without touching s.
func (s *Spectrum) Clone() *Spectrum {
	c := NewSpectrum()
	for _, rec := range s.Records() {
		c.Put(rec)
	}
	return c
}

// Frequencies lists the frequencies of all records in order.
func (s *Spectrum) Frequencies() []float64 {
	recs := s.Records()
	out := make([]float64, len(recs))
	for i, rec := range recs {
		out[i] = rec.Frequency
	}
	return out
}
