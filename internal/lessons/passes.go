// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lessons

import (
	"github.com/pdiddy/lessonfix/internal/bolddiv"
	"github.com/pdiddy/lessonfix/internal/boldsql"
	"github.com/pdiddy/lessonfix/internal/fixdivs"
	"github.com/pdiddy/lessonfix/pkg/types"
)

// Pass names as used on the command line and in the journal.
const (
	PassBoldDivs     = "bold-divs"
	PassFixDivs      = "fix-divs"
	PassNormalizeSQL = "normalize-sql"
)

// BoldDivs wraps centered 24px div headers in bold markers. Every file is
// backed up to .bak and rewritten, even when nothing matched.
var BoldDivs = Pass{
	Name:         PassBoldDivs,
	Transform:    bolddiv.Wrap,
	Policy:       types.BackupAlways,
	BackupSuffix: types.BackupSuffix,
}

// FixDivs removes sql fences around centered divs and turns blockquoted SQL
// into fenced blocks. Only changed files are backed up (.fixbak) and written.
var FixDivs = Pass{
	Name:         PassFixDivs,
	Transform:    fixdivs.Normalize,
	Policy:       types.BackupOnChange,
	BackupSuffix: types.FixBackupSuffix,
	Verb:         "fixed",
}

// NormalizeSQL turns runs of bold SQL lines into fenced sql blocks. Only
// changed files are backed up (.bak) and written.
var NormalizeSQL = Pass{
	Name:         PassNormalizeSQL,
	Transform:    boldsql.Normalize,
	Policy:       types.BackupOnChange,
	BackupSuffix: types.BackupSuffix,
	Verb:         "normalized",
}
