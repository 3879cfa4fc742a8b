package nvp

import "strings"

// Build merges supplied over defaults, checks that every required field is
// present and returns the request with upper-cased keys.
func Build(required []string, defaults, supplied map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(defaults)+len(supplied))
	for k, v := range defaults {
		merged[strings.ToUpper(k)] = v
	}
	for k, v := range supplied {
		merged[strings.ToUpper(k)] = v
	}
	var missing []string
	for _, r := range required {
		if _, ok := merged[strings.ToUpper(r)]; !ok {
			missing = append(missing, strings.ToUpper(r))
		}
	}
	if len(missing) > 0 {
		return nil, &MissingParameterError{Fields: missing}
	}
	return merged, nil
}

// upperKeys copies params with every key upper-cased.
func upperKeys(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[strings.ToUpper(k)] = v
	}
	return out
}
