package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/deepakuplers/website-tech-detector/internal/signature"
)

// MaxMethods bounds the method descriptions kept per technology. The first
// ones found are kept, in group order, not the heaviest.
const MaxMethods = 5

// Detection is the score one signature earned against one page.
type Detection struct {
	Name    string
	Score   int
	Methods []string
}

// Score applies every rule of sig to ev. Each match adds its group's weight
// and records a description; descriptions stop at MaxMethods while points
// keep accumulating.
func Score(ctx context.Context, sig *signature.Signature, ev *Evidence) (int, []string) {
	points := 0
	methods := make([]string, 0, MaxMethods)

	hit := func(kind signature.GroupKind, description string) {
		points += kind.Weight()
		if len(methods) < MaxMethods {
			methods = append(methods, description)
		}
	}

	for _, kind := range signature.GroupOrder {
		if kind.IsProbe() {
			for _, path := range sig.Paths(kind) {
				if ev.PathExists(ctx, path) {
					hit(kind, probeDescription(kind, path))
				}
			}
			continue
		}

		for _, m := range sig.Matchers(kind) {
			if description, ok := matchText(kind, m, ev); ok {
				hit(kind, description)
			}
		}
	}

	return points, methods
}

func probeDescription(kind signature.GroupKind, path string) string {
	if kind == signature.GroupAdminPaths {
		return "Admin path: " + path
	}
	return "API endpoint: " + path
}

// matchText tests one matcher against the evidence field its group reads.
func matchText(kind signature.GroupKind, m *signature.Matcher, ev *Evidence) (string, bool) {
	switch kind {
	case signature.GroupHTML:
		if m.MatchString(ev.HTML) {
			return "HTML pattern: " + m.Pattern, true
		}
		for _, resource := range ev.Resources {
			if m.MatchString(resource) {
				return "HTML pattern: " + m.Pattern, true
			}
		}
	case signature.GroupMeta:
		if ev.Generator != "" && m.MatchString(generatorTag(ev.Generator)) {
			return "Meta generator: " + ev.Generator, true
		}
		if m.MatchString(ev.MetaText) {
			return "Meta tag: " + m.Pattern, true
		}
	case signature.GroupHeader:
		if m.MatchString(ev.HeaderText) {
			return "HTTP header: " + m.Pattern, true
		}
	case signature.GroupJS:
		if m.MatchString(ev.ScriptText) {
			return "JavaScript: " + m.Pattern, true
		}
	case signature.GroupCSS:
		if m.MatchString(ev.ClassTokens) {
			return "CSS class: " + m.Pattern, true
		}
	}
	return "", false
}

// generatorTag renders the generator in canonical attribute order so meta
// patterns match regardless of how the page ordered its attributes.
func generatorTag(content string) string {
	return `<meta name="generator" content="` + content + `">`
}

// ScoreAll scores every signature concurrently, at most concurrency at a
// time. Results keep the order of sigs.
func ScoreAll(ctx context.Context, sigs []*signature.Signature, ev *Evidence, concurrency int) []Detection {
	out := make([]Detection, len(sigs))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, sig := range sigs {
		g.Go(func() error {
			points, methods := Score(ctx, sig, ev)
			out[i] = Detection{Name: sig.Name, Score: points, Methods: methods}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Detected keeps the detections at or above threshold, preserving order.
func Detected(all []Detection, threshold int) []Detection {
	var kept []Detection
	for _, d := range all {
		if d.Score >= threshold {
			kept = append(kept, d)
		}
	}
	return kept
}
