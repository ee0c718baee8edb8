package wire

import "strings"

// Navigation-validity keys. Choice keys carry the target activity id.
const (
	NavContinue = "N"
	NavPrevious = "P"
	navChoice   = "C"
)

func ChoiceKey(activityID string) string {
	return navChoice + "," + activityID
}

// ChoiceTarget returns the activity id of a C,<id> key.
func ChoiceTarget(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, navChoice+",")
	return id, ok && id != ""
}

// EncodeNavValidity writes command@Evalue@N pairs; values are "true" or "false".
func EncodeNavValidity(answers map[string]bool) string {
	values := make(map[string]string, len(answers))
	for key, ok := range answers {
		if ok {
			values[key] = "true"
		} else {
			values[key] = "false"
		}
	}
	return Encode(values)
}

// DecodeNavValidity parses a navigation-validity response, dropping values other than
// "true" and "false".
func DecodeNavValidity(s string) (map[string]string, error) {
	values, err := Decode(s)
	if err != nil {
		return nil, err
	}
	for key, v := range values {
		if v != "true" && v != "false" {
			delete(values, key)
		}
	}
	return values, nil
}
