package models

import "strconv"

// Page is the from/size pair accepted by every list endpoint.
type Page struct {
	From int
	Size int
}

func DefaultPage() Page {
	return Page{From: 0, Size: DefaultPageSize}
}

// ParsePage reads from/size query values; empty values take the defaults.
func ParsePage(from, size string) (Page, error) {
	p := DefaultPage()
	if from != "" {
		v, err := strconv.Atoi(from)
		if err != nil {
			return Page{}, Validationf("parameter from must be an integer: %s", from)
		}
		p.From = v
	}
	if size != "" {
		v, err := strconv.Atoi(size)
		if err != nil {
			return Page{}, Validationf("parameter size must be an integer: %s", size)
		}
		p.Size = v
	}
	if err := p.Validate(); err != nil {
		return Page{}, err
	}
	return p, nil
}

func (p Page) Validate() error {
	if p.From < 0 {
		return Validationf("parameter from must not be negative")
	}
	if p.Size < 1 {
		return Validationf("parameter size must be positive")
	}
	return nil
}

// Offset is page-aligned: from is rounded down to a multiple of size.
func (p Page) Offset() int {
	if p.Size < 1 {
		return 0
	}
	return (p.From / p.Size) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}
