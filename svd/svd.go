// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svd reads CMSIS-SVD hardware descriptions and lowers them into
// the normalized device model of the ir package. It is the pre-existing
// producer of that model: the generator itself never looks at XML.
package svd

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

type Int int

func (i *Int) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseInt(s, 0, 0)
	*i = Int(v)
	return err
}

type Uint uint

func (u *Uint) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 0, 0)
	*u = Uint(v)
	return err
}

type Uint64 uint64

func (u *Uint64) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 0, 64)
	*u = Uint64(v)
	return err
}

type Device struct {
	Vendor      *string `xml:"vendor"`
	Name        string  `xml:"name"`
	Series      *string `xml:"series"`
	Version     string  `xml:"version"`
	Description string  `xml:"description"`
	Width       Uint    `xml:"width"`
	*RegisterPropertiesGroup
	Peripherals []*Peripheral `xml:"peripherals>peripheral"`
}

// RegisterPropertiesGroup carries the register defaults inherited down
// the device > peripheral > cluster > register chain.
type RegisterPropertiesGroup struct {
	Size       *Uint   `xml:"size"`
	Access     *string `xml:"access"`
	ResetValue *Uint64 `xml:"resetValue"`
	ResetMask  *Uint64 `xml:"resetMask"`
}

type Peripheral struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	*DimElementGroup
	Name        string  `xml:"name"`
	Description *string `xml:"description"`
	GroupName   *string `xml:"groupName"`
	BaseAddress Uint64  `xml:"baseAddress"`
	*RegisterPropertiesGroup
	Interrupts []*Interrupt `xml:"interrupt"`
	Registers  []*Register  `xml:"registers>register"`
	Clusters   []*Cluster   `xml:"registers>cluster"`
}

type DimElementGroup struct {
	Dim          Uint    `xml:"dim"`
	DimIncrement Uint    `xml:"dimIncrement"`
	DimIndex     *string `xml:"dimIndex"`
}

type Interrupt struct {
	Name        string  `xml:"name"`
	Description *string `xml:"description"`
	Value       Int     `xml:"value"`
}

type Register struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name          string  `xml:"name"`
	Description   *string `xml:"description"`
	AddressOffset Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	ModifiedWriteValues *string  `xml:"modifiedWriteValues"`
	Fields              []*Field `xml:"fields>field"`
}

type Field struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name        string  `xml:"name"`
	Description *string `xml:"description"`
	*BitRangeOffsetWidth
	*BitRangeLSBMSB
	BitRangePattern     *string             `xml:"bitRange"`
	Access              *string             `xml:"access"`
	ModifiedWriteValues *string             `xml:"modifiedWriteValues"`
	EnumeratedValues    []*EnumeratedValues `xml:"enumeratedValues"`
}

type BitRangeOffsetWidth struct {
	BitOffset Uint  `xml:"bitOffset"`
	BitWidth  *Uint `xml:"bitWidth"`
}

type BitRangeLSBMSB struct {
	LSB Uint `xml:"lsb"`
	MSB Uint `xml:"msb"`
}

type EnumeratedValues struct {
	Name            *string            `xml:"name"`
	Usage           *string            `xml:"usage"`
	EnumeratedValue []*EnumeratedValue `xml:"enumeratedValue"`
}

type EnumeratedValue struct {
	Name        *string `xml:"name"`
	Description *string `xml:"description"`
	Value       *string `xml:"value"`
	IsDefault   *bool   `xml:"isDefault"`
}

var ErrNilValue = errors.New("nil value")

// Val parses the numeric value of an enumerated value, accepting the
// usual integer formats plus the binary #1011 and #1x0x "do not care"
// forms ('x' counts as 0).
func (ev *EnumeratedValue) Val() (uint64, error) {
	if ev.Value == nil {
		return 0, ErrNilValue
	}
	s := *ev.Value
	if len(s) > 0 && s[0] == '#' {
		a := make([]byte, len(s)+1)
		a[0] = '0'
		a[1] = 'b'
		for i := 1; i < len(s); i++ {
			b := s[i]
			if b == 'x' || b == 'X' {
				b = '0'
			}
			a[i+1] = b
		}
		s = string(a)
	}
	return strconv.ParseUint(s, 0, 64)
}

type Cluster struct {
	DerivedFrom *string `xml:"derivedFrom,attr"`
	DimElementGroup
	Name          string  `xml:"name"`
	Description   *string `xml:"description"`
	AddressOffset Uint64  `xml:"addressOffset"`
	*RegisterPropertiesGroup
	Registers []*Register `xml:"register"`
	Clusters  []*Cluster  `xml:"cluster"`
}

// Parse decodes an SVD document.
func Parse(r io.Reader) (*Device, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dev := new(Device)
	if err := xml.Unmarshal(data, dev); err != nil {
		return nil, err
	}
	return dev, nil
}
