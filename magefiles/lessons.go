//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func lessonfix(pass string) error {
	return sh.RunV(filepath.Join(binDir, binName), pass)
}

// BoldDivs wraps centered 24px div headers in the lessons.
func BoldDivs() error {
	mg.Deps(Build)
	return lessonfix("bold-divs")
}

// FixDivs unfences centered divs and fences blockquoted SQL.
func FixDivs() error {
	mg.Deps(Build)
	return lessonfix("fix-divs")
}

// NormalizeSQL converts bold SQL lines into fenced blocks.
func NormalizeSQL() error {
	mg.Deps(Build)
	return lessonfix("normalize-sql")
}

// Lessons runs every pass in order: fix-divs, bold-divs, normalize-sql.
func Lessons() {
	mg.SerialDeps(FixDivs, BoldDivs, NormalizeSQL)
}
