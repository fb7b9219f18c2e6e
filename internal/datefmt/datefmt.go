// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package datefmt formats times with the PHP date() format letters that
// CMS page settings store, e.g. "d.m.Y" or "D, j M Y H:i".
package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// Translator maps an English month or weekday name, long ("March") or
// short ("Mar"), to the name in the reader's language.
type Translator func(name string) string

// Format renders t according to layout with English month and weekday
// names. Unknown letters are copied through; a backslash escapes the next
// character.
func Format(t time.Time, layout string) string {
	return FormatLocal(t, layout, nil)
}

// FormatLocal is Format with the names of D, l, F and M passed through tr.
// A nil tr keeps the English names.
func FormatLocal(t time.Time, layout string, tr Translator) string {
	var b strings.Builder
	b.Grow(len(layout) + 8)

	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			if i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			}
			continue
		}
		s := token(t, r)
		if tr != nil && strings.ContainsRune("DlFM", r) {
			s = tr(s)
		}
		b.WriteString(s)
	}
	return b.String()
}

func token(t time.Time, r rune) string {
	switch r {
	// day
	case 'd':
		return pad2(t.Day())
	case 'D':
		return t.Format("Mon")
	case 'j':
		return strconv.Itoa(t.Day())
	case 'l':
		return t.Weekday().String()
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd)
	case 'S':
		return ordinalSuffix(t.Day())
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'z':
		return strconv.Itoa(t.YearDay() - 1)
	// week
	case 'W':
		_, w := t.ISOWeek()
		return pad2(w)
	// month
	case 'F':
		return t.Month().String()
	case 'm':
		return pad2(int(t.Month()))
	case 'M':
		return t.Format("Jan")
	case 'n':
		return strconv.Itoa(int(t.Month()))
	case 't':
		return strconv.Itoa(daysIn(t))
	// year
	case 'L':
		if daysInYear(t.Year()) == 366 {
			return "1"
		}
		return "0"
	case 'o':
		y, _ := t.ISOWeek()
		return strconv.Itoa(y)
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'y':
		return t.Format("06")
	// time
	case 'a':
		return t.Format("pm")
	case 'A':
		return t.Format("PM")
	case 'g':
		return t.Format("3")
	case 'G':
		return strconv.Itoa(t.Hour())
	case 'h':
		return t.Format("03")
	case 'H':
		return pad2(t.Hour())
	case 'i':
		return pad2(t.Minute())
	case 's':
		return pad2(t.Second())
	case 'u':
		return t.Format("000000")
	case 'v':
		return t.Format("000")
	// timezone
	case 'e':
		return t.Location().String()
	case 'O':
		return t.Format("-0700")
	case 'P':
		return t.Format("-07:00")
	case 'T':
		return t.Format("MST")
	case 'Z':
		_, off := t.Zone()
		return strconv.Itoa(off)
	// full date/time
	case 'c':
		return t.Format(time.RFC3339)
	case 'r':
		return t.Format(time.RFC1123Z)
	case 'U':
		return strconv.FormatInt(t.Unix(), 10)
	}
	return string(r)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func daysInYear(y int) int {
	return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
