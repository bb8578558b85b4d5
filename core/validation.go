// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ParseLanguage normalizes and validates a language code.
// Codes are matched case-insensitively with surrounding whitespace ignored.
func ParseLanguage(code string) (Language, error) {
	normalized := Language(strings.ToLower(strings.TrimSpace(code)))
	switch normalized {
	case LangSpanish, LangFrench, LangItalian, LangPortuguese,
		LangCatalan, LangGalician, LangRomanian, LangEnglish:
		return normalized, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// ParseMatchType normalizes and validates a match type filter.
// The empty string is valid and means "no filter".
func ParseMatchType(s string) (MatchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "perfect":
		return MatchPerfect, nil
	case "near":
		return MatchNear, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMatchType, s)
}

// ValidateGroup validates a CognateGroup according to domain rules.
//
// Validation rules:
//   - Reference must not be empty
//   - Entries must cover at least two languages (a cognate relationship
//     requires at least two words)
//   - Every entry key must be a supported language code
//
// NOT validated:
//   - Words may be empty strings; an empty word is a real dataset value
//     and must stay distinguishable from a missing entry
//   - Confidence carries whatever the offline pipeline produced
func ValidateGroup(group *CognateGroup) error {
	if group == nil {
		return fmt.Errorf("%w: group is nil", ErrInvalidGroup)
	}

	if strings.TrimSpace(group.Reference) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGroup, ErrEmptyReference)
	}

	if len(group.Entries) < 2 {
		return fmt.Errorf("%w: %w (reference %q has %d)",
			ErrInvalidGroup, ErrTooFewEntries, group.Reference, len(group.Entries))
	}

	for lang := range group.Entries {
		if _, err := ParseLanguage(string(lang)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidGroup, err)
		}
	}

	return nil
}
