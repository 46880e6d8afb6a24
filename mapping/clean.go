package mapping

import (
	"regexp"
	"strings"

	"github.com/nbijlani/OpenStreetMap/element"
)

// Keys that contain one of these characters are dropped entirely.
var problemCharsRe = regexp.MustCompile("[=+/&<>;'\"?%#$@,. \t\r\n]")

// Keys of the form prefix:rest are split into a type prefix and the
// remaining key. Only all-lowercase prefixes qualify.
var namespacedKeyRe = regexp.MustCompile(`^(?:[a-z]|_)+:(?:[a-z]|_)+`)

// RegularType is the type of tags without a namespace prefix.
const RegularType = "regular"

// A CleanedTag is a cleaned tag with its namespace prefix split off
// into Type, ready for the relational output.
type CleanedTag struct {
	Key   string
	Value string
	Type  string
}

// A Cleaner applies the tag transformations to all tags of an element
// and assembles the cleaned output tags.
type Cleaner struct {
	transformer *Transformer
}

func NewCleaner(corrections Corrections) *Cleaner {
	return &Cleaner{transformer: NewTransformer(corrections)}
}

// CleanTags transforms all tags of one element, in document order.
// Deleted tags and tags with problem characters in their key are
// skipped. A tag split off by a transformation is appended last,
// unless its key is already present in the cleaned tags.
func (c *Cleaner) CleanTags(tags element.Tags) []CleanedTag {
	var cleaned []CleanedTag
	var pending *element.Tag

	for _, tag := range tags {
		result, split := c.transformer.Apply(tag)
		if split != nil {
			pending = split
		}
		if result == nil {
			continue
		}
		if problemCharsRe.MatchString(result.Key) {
			continue
		}
		cleaned = append(cleaned, splitNamespace(*result))
	}

	if pending != nil {
		extra := splitNamespace(*pending)
		duplicate := false
		for _, tag := range cleaned {
			if tag.Key == extra.Key {
				duplicate = true
				break
			}
		}
		if !duplicate {
			cleaned = append(cleaned, extra)
		}
	}
	return cleaned
}

// splitNamespace splits the key at the first colon. The part before
// the colon becomes the tag type; the remainder, which may itself
// contain colons (old:addr:postcode), becomes the key.
func splitNamespace(tag element.Tag) CleanedTag {
	if namespacedKeyRe.MatchString(tag.Key) {
		i := strings.Index(tag.Key, ":")
		return CleanedTag{Key: tag.Key[i+1:], Value: tag.Value, Type: tag.Key[:i]}
	}
	return CleanedTag{Key: tag.Key, Value: tag.Value, Type: RegularType}
}
