package domain

const sampleHost = "https://gitlab.example.com/"

type sampleEntry struct {
	name     string
	kind     NodeKind
	children []sampleEntry
}

func sampleGroup(name string, children ...sampleEntry) sampleEntry {
	return sampleEntry{name: name, kind: KindGroup, children: children}
}

func sampleProject(name string) sampleEntry {
	return sampleEntry{name: name, kind: KindProject}
}

var sampleForest = []sampleEntry{
	sampleGroup("dev-platform",
		sampleGroup("backend", sampleProject("api"), sampleProject("auth")),
		sampleGroup("frontend", sampleProject("web"), sampleProject("design-system")),
		sampleProject("platform-tools"),
	),
	sampleGroup("data",
		sampleGroup("ingest", sampleProject("ingest"), sampleProject("pipeline")),
		sampleGroup("models", sampleProject("fraud"), sampleProject("churn")),
		sampleProject("data-tools"),
	),
	sampleGroup("security",
		sampleProject("sec-tools"),
		sampleProject("audits"),
	),
}

// SampleTree returns a fixed demo forest. It is shown in place of the real
// catalog when loading fails.
func SampleTree() *Tree {
	b := NewBuilder()
	var add func(e sampleEntry, prefix string) int
	add = func(e sampleEntry, prefix string) int {
		path := prefix + e.name
		idx := b.Add(Node{
			Name:       e.name,
			Kind:       e.kind,
			URL:        sampleHost + path,
			Path:       path,
			Visibility: "private",
		})
		for _, child := range e.children {
			b.Attach(idx, add(child, path+"/"))
		}
		return idx
	}
	for _, root := range sampleForest {
		b.AddRoot(add(root, ""))
	}
	return b.Finish()
}
