package entity

import (
	"encoding/json"
	"errors"
)

// decodeLenient unmarshals b into v. Values whose JSON type does not fit the
// target field are skipped and leave it at its zero value. Malformed JSON is
// still an error.
func decodeLenient(b []byte, v any) error {
	err := json.Unmarshal(b, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

// UnmarshalJSON decodes the record, reading its name columns as Text.
func (b *Business) UnmarshalJSON(data []byte) error {
	type plain Business
	aux := struct {
		*plain
		RecordID Text `json:"Record_ID"`
		Name     Text `json:"Name"`
		URL      Text `json:"URL"`
	}{plain: (*plain)(b)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	b.RecordID, b.Name, b.URL = aux.RecordID.String(), aux.Name.String(), aux.URL.String()
	return nil
}

// UnmarshalJSON decodes the record, reading Status as Text.
func (s *Survey) UnmarshalJSON(data []byte) error {
	type plain Survey
	aux := struct {
		*plain
		RecordID Text `json:"Record_ID"`
		Status   Text `json:"Status"`
	}{plain: (*plain)(s)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	s.RecordID, s.Status = aux.RecordID.String(), aux.Status.String()
	return nil
}

// UnmarshalJSON decodes the record, reading Name as Text.
func (c *Category) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name Text `json:"Name"`
	}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	c.Name = aux.Name.String()
	return nil
}

// UnmarshalJSON decodes the record, reading its name columns as Text.
func (c *City) UnmarshalJSON(data []byte) error {
	type plain City
	aux := struct {
		*plain
		Name   Text `json:"Name"`
		NameVI Text `json:"Name_VI"`
		URL    Text `json:"URL"`
	}{plain: (*plain)(c)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	c.Name, c.NameVI, c.URL = aux.Name.String(), aux.NameVI.String(), aux.URL.String()
	return nil
}

// UnmarshalJSON decodes the record, reading its name columns as Text.
func (n *Neighborhood) UnmarshalJSON(data []byte) error {
	type plain Neighborhood
	aux := struct {
		*plain
		Name   Text `json:"Name"`
		NameVI Text `json:"Name_VI"`
	}{plain: (*plain)(n)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	n.Name, n.NameVI = aux.Name.String(), aux.NameVI.String()
	return nil
}

// UnmarshalJSON decodes the record, reading Name as Text.
func (l *Location) UnmarshalJSON(data []byte) error {
	type plain Location
	aux := struct {
		*plain
		Name Text `json:"Name"`
	}{plain: (*plain)(l)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	l.Name = aux.Name.String()
	return nil
}

// UnmarshalJSON decodes the record, reading Name as Text.
func (p *Partner) UnmarshalJSON(data []byte) error {
	type plain Partner
	aux := struct {
		*plain
		Name Text `json:"Name"`
	}{plain: (*plain)(p)}
	if err := decodeLenient(data, &aux); err != nil {
		return err
	}
	p.Name = aux.Name.String()
	return nil
}

// UnmarshalJSON decodes the snapshot, skipping tables of the wrong shape.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	return decodeLenient(data, (*plain)(s))
}
