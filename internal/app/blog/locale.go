package blog

import (
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when the visitor states no usable preference.
var DefaultLocale = language.AmericanEnglish

var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	// the first entry is the matcher's fallback
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.MustParse("en-IN"), "2/1/2006"},
	{language.Tamil, "2/1/2006"},
	{language.Hindi, "2/1/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter renders calendar dates the way a given locale writes them.
type DateFormatter struct {
	layout string
}

// FormatterFor picks the date layout best matching an Accept-Language header.
func FormatterFor(acceptLanguage string) DateFormatter {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{DefaultLocale}
	}
	_, index, _ := dateMatcher.Match(tags...)
	return DateFormatter{layout: dateLayouts[index].layout}
}

// Format renders t as a date in the formatter's locale.
func (f DateFormatter) Format(t time.Time) string {
	layout := f.layout
	if layout == "" {
		layout = dateLayouts[0].layout
	}
	return t.Format(layout)
}
