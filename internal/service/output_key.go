package service

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"billsight/internal/domain"
)

// randomSuffix returns a 32-character hex string.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// BaseName returns the last path segment of key up to its first dot.
func BaseName(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// AnalysisResultKey derives the key an analysis result is written under.
func AnalysisResultKey(policy domain.KeyPolicy, sourceKey, suffix string) string {
	base := BaseName(sourceKey)
	if policy == domain.KeyPolicyFixed {
		return base + "_result.json"
	}
	return "processed_result_" + base + "_" + suffix + ".json"
}

// OCRTextKey derives the key extracted OCR text is written under.
func OCRTextKey(policy domain.KeyPolicy, prefix, sourceKey, suffix string) string {
	name := BaseName(sourceKey)
	if policy == domain.KeyPolicyUnique {
		name += "_" + suffix
	}
	if prefix == "" {
		return name + ".txt"
	}
	return path.Join(prefix, name+".txt")
}
