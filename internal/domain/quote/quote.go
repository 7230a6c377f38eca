package quote

import (
	"fmt"
	"math/rand"
)

// Record is a single scraped quotation together with its author's birth details.
// The csv tags are the fixed header of the on-disk cache.
type Record struct {
	Text        string `csv:"quote contents" json:"text"`
	Author      string `csv:"author name" json:"author"`
	BirthDetail string `csv:"author birth details" json:"birth_detail"`
}

// BirthDetail formats an author's birthplace and birth date as a hint sentence.
func BirthDetail(place, date string) string {
	return fmt.Sprintf("Author was born %s on %s.", place, date)
}

// Dataset is the ordered collection of records for one run. It is never
// modified once built.
type Dataset struct {
	records []Record
}

func NewDataset(records []Record) Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return Dataset{records: cp}
}

func (d Dataset) Len() int {
	return len(d.records)
}

func (d Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of the records in scrape order.
func (d Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Random picks one record using rng. It panics on an empty dataset.
func (d Dataset) Random(rng *rand.Rand) Record {
	return d.records[rng.Intn(len(d.records))]
}
