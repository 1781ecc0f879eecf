package store

// GetStringField safely extracts a string field from a repository record
func (r Repository) GetStringField(key string, defaultValue string) string {
	if val, ok := r[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetIntField safely extracts an int field from a repository record.
// JSON numbers decode as float64, so numeric variants are converted.
func (r Repository) GetIntField(key string, defaultValue int) int {
	if val, ok := r[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// ID returns the record's "id" field, or the empty string when absent or not
// a string.
func (r Repository) ID() string {
	return r.GetStringField("id", "")
}
