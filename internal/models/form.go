// ABOUTME: Raw form input supplied on submission.
// ABOUTME: Shapes the four text values into a Material.

package models

// Form holds the raw values of a submission. Tags is the unsplit
// comma-separated string.
type Form struct {
	Contributor  string
	ResourceName string
	Link         string
	Tags         string
}

func (f Form) Material() *Material {
	return NewMaterial(f.Contributor, f.ResourceName, f.Link, ParseTags(f.Tags))
}
