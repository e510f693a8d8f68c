package domain

// InspectCache remembers files that had no issues, keyed by content hash.
type InspectCache struct {
	ConfigHash string            `json:"config_hash"`
	Clean      map[string]string `json:"clean"` // relative path -> content hash
}

func NewInspectCache(configHash string) *InspectCache {
	return &InspectCache{ConfigHash: configHash, Clean: make(map[string]string)}
}

func (c *InspectCache) IsInvalidated(configHash string) bool {
	return c.ConfigHash != configHash
}

// IsClean reports whether path was clean the last time it had this hash.
func (c *InspectCache) IsClean(path, contentHash string) bool {
	h, ok := c.Clean[path]
	return ok && h == contentHash
}

func (c *InspectCache) MarkClean(path, contentHash string) {
	if c.Clean == nil {
		c.Clean = make(map[string]string)
	}
	c.Clean[path] = contentHash
}

func (c *InspectCache) Forget(path string) {
	delete(c.Clean, path)
}
