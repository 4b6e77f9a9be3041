package resolve

import (
	"github.com/coolbeans/lexcite/pkg/citation"
)

// Resource is the opaque identity of one cited authority. Two citations
// resolve to equal Resources exactly when one resolution pass decided
// they denote the same authority. The zero Resource never names an
// authority.
type Resource struct {
	id int
}

// ID returns the resource's numeric identity within its resolution
// pass, counting from 1. Hosts backing resolution with a store can use
// it as a stable per-document key.
func (r Resource) ID() int { return r.id }

// IsZero reports whether the resource names no authority.
func (r Resource) IsZero() bool { return r.id == 0 }

// Resolved pairs a citation with the resource it resolved to.
type Resolved struct {
	Citation citation.Citation
	Resource Resource
}

// Resolutions is the ordered resource-to-citations map built by one
// resolution pass. Resources appear in minting order; each group lists
// its citations in document order.
type Resolutions struct {
	order       []Resource
	groups      map[Resource][]citation.Citation
	authorities map[Resource]citation.Citation
}

func newResolutions() *Resolutions {
	return &Resolutions{
		groups:      make(map[Resource][]citation.Citation),
		authorities: make(map[Resource]citation.Citation),
	}
}

func (r *Resolutions) add(res Resource, c citation.Citation) {
	if _, ok := r.groups[res]; !ok {
		r.order = append(r.order, res)
	}
	r.groups[res] = append(r.groups[res], c)
}

// Resources returns every resolved authority in minting order.
func (r *Resolutions) Resources() []Resource {
	out := make([]Resource, len(r.order))
	copy(out, r.order)
	return out
}

// Citations returns the citations that resolved to res, in document
// order.
func (r *Resolutions) Citations(res Resource) []citation.Citation {
	return r.groups[res]
}

// Authority returns the citation that minted res: the full citation
// itself, or the synthesized clone for a section-substituting id.
func (r *Resolutions) Authority(res Resource) (citation.Citation, bool) {
	c, ok := r.authorities[res]
	return c, ok
}

// Len reports the number of resolved authorities.
func (r *Resolutions) Len() int { return len(r.order) }
