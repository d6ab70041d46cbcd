package record

import "strings"

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// SanitizeName replaces spaces (and path separators) with underscores.
func SanitizeName(s string) string {
	return nameReplacer.Replace(s)
}

// BaseName is "{Name}_{Company Name}" with spaces replaced by underscores.
func (r Record) BaseName() string {
	return SanitizeName(r.Name) + "_" + SanitizeName(r.Company)
}

// FileName returns the output file name of r for format f.
func (r Record) FileName(f Format) string {
	return r.BaseName() + "." + f.Ext()
}
