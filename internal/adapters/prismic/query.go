package prismic

import (
	"fmt"
	"strings"

	"github.com/philly/spacetraveling/internal/posts/ports"
)

// At builds an `at` predicate, e.g. [at(document.type,"po")].
func At(path, value string) string {
	return fmt.Sprintf("[at(%s,%q)]", path, value)
}

// Predicates joins predicates into the q parameter value.
func Predicates(predicates ...string) string {
	return "[" + strings.Join(predicates, "") + "]"
}

// FormatOrderings renders orderings as the API expects, e.g.
// [document.last_publication_date desc].
func FormatOrderings(orderings []ports.Ordering) string {
	parts := make([]string, 0, len(orderings))
	for _, o := range orderings {
		if o.Desc {
			parts = append(parts, o.Field+" desc")
			continue
		}
		parts = append(parts, o.Field)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
