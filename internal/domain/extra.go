package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Extra holds JSON members a type does not model, keyed by member name. They
// are written back unchanged after the modelled fields.
type Extra map[string]json.RawMessage

var (
	documentFields    = []string{"caseStudies", "photos", "videos"}
	caseStudiesFields = []string{"store", "website"}
	projectFields     = []string{"title", "image", "summary", "details", "link"}
	photoFields       = []string{"id", "src", "alt", "category"}
	videoFields       = []string{"id", "title", "category", "url"}
)

// isModelled matches encoding/json, which binds object keys to fields
// case-insensitively.
func isModelled(name string, fields []string) bool {
	return slices.ContainsFunc(fields, func(f string) bool { return strings.EqualFold(f, name) })
}

// unmarshalWithExtra decodes data into v and returns the members v has no
// field for, or nil when there are none.
func unmarshalWithExtra(data []byte, v any, fields []string) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	maps.DeleteFunc(members, func(name string, _ json.RawMessage) bool {
		return isModelled(name, fields)
	})
	if len(members) == 0 {
		return nil, nil
	}
	return Extra(members), nil
}

// marshalWithExtra encodes v and appends extra's members in name order.
// Members that collide with a modelled field are skipped.
func marshalWithExtra(v any, extra Extra, fields []string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	empty := len(data) == 2
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if isModelled(name, fields) {
			continue
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *PortfolioDocument) UnmarshalJSON(data []byte) error {
	type plain PortfolioDocument
	extra, err := unmarshalWithExtra(data, (*plain)(d), documentFields)
	d.Extra = extra
	return err
}

func (d PortfolioDocument) MarshalJSON() ([]byte, error) {
	type plain PortfolioDocument
	return marshalWithExtra(plain(d), d.Extra, documentFields)
}

func (c *CaseStudies) UnmarshalJSON(data []byte) error {
	type plain CaseStudies
	extra, err := unmarshalWithExtra(data, (*plain)(c), caseStudiesFields)
	c.Extra = extra
	return err
}

func (c CaseStudies) MarshalJSON() ([]byte, error) {
	type plain CaseStudies
	return marshalWithExtra(plain(c), c.Extra, caseStudiesFields)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	extra, err := unmarshalWithExtra(data, (*plain)(p), projectFields)
	p.Extra = extra
	return err
}

func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	return marshalWithExtra(plain(p), p.Extra, projectFields)
}

func (p *Photo) UnmarshalJSON(data []byte) error {
	type plain Photo
	extra, err := unmarshalWithExtra(data, (*plain)(p), photoFields)
	p.Extra = extra
	return err
}

func (p Photo) MarshalJSON() ([]byte, error) {
	type plain Photo
	return marshalWithExtra(plain(p), p.Extra, photoFields)
}

func (v *Video) UnmarshalJSON(data []byte) error {
	type plain Video
	extra, err := unmarshalWithExtra(data, (*plain)(v), videoFields)
	v.Extra = extra
	return err
}

func (v Video) MarshalJSON() ([]byte, error) {
	type plain Video
	return marshalWithExtra(plain(v), v.Extra, videoFields)
}
