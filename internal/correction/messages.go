// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package correction

import (
	"github.com/jeranaias/tensaku-tui/internal/api"
	"github.com/jeranaias/tensaku-tui/internal/model"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// ResultMsg delivers the outcome of a correction request. It is only
// meaningful to the Controller that issued it; any other receiver, or the
// issuer after a newer request, ignores it.
type ResultMsg struct {
	owner  *Controller
	token  uint64
	Result *model.CorrectionResult
	Err    error
}

// =============================================================================
// LOCALIZED FAILURE TEXT
// =============================================================================

// Locale selects the language of user-facing failure messages.
type Locale string

const (
	LocaleJapanese Locale = "ja"
	LocaleEnglish  Locale = "en"
)

// ParseLocale maps a config value to a Locale, defaulting to Japanese.
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleEnglish:
		return LocaleEnglish
	default:
		return LocaleJapanese
	}
}

type failureKind int

const (
	failureGeneric failureKind = iota
	failureTimeout
	failureNetwork
	failureService
)

var failureText = map[Locale]map[failureKind]string{
	LocaleJapanese: {
		failureGeneric: "添削処理中にエラーが発生しました",
		failureTimeout: "添削処理がタイムアウトしました。しばらくしてから再度お試しください",
		failureNetwork: "添削サービスに接続できませんでした。ネットワークを確認してください",
		failureService: "添削処理中にエラーが発生しました",
	},
	LocaleEnglish: {
		failureGeneric: "An error occurred while correcting the text",
		failureTimeout: "The correction request timed out. Please try again shortly",
		failureNetwork: "Could not reach the correction service. Check your network connection",
		failureService: "An error occurred while correcting the text",
	},
}

func classify(err error) failureKind {
	switch {
	case api.IsTimeout(err):
		return failureTimeout
	case api.IsNetworkFailure(err):
		return failureNetwork
	case api.IsServiceError(err):
		return failureService
	default:
		return failureGeneric
	}
}

// FailureMessage returns the user-facing text for a failed correction.
func FailureMessage(locale Locale, err error) string {
	table, ok := failureText[locale]
	if !ok {
		table = failureText[LocaleJapanese]
	}
	return table[classify(err)]
}
