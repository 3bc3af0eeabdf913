package vocabulary

import "sort"

// PostProcessVocabulary runs after all sources have been parsed into a
// vocabulary. It computes the derived properties the raw parse does not
// produce (transitive superclass closures, subclass back-references,
// combined property domains and ranges, individual class closures) and
// carries user-assigned settings forward from the previous vocabulary
// snapshot, matching elements by IRI.
//
// The old vocabulary is only read; it may be nil for a first build. The
// pass must run exactly once per rebuild, after the complete set of facts
// is available, because closures depend on every source.
func PostProcessVocabulary(voc, old *Vocabulary) error {
	normalizeFacts(voc)

	classAncestors, err := closeHierarchy(voc.ClassIRIs(), func(iri string) []string {
		if c, ok := voc.Classes[iri]; ok {
			return c.ParentClassIRIs
		}
		return nil
	}, "superclass hierarchy is cyclic")
	if err != nil {
		return err
	}
	for iri, c := range voc.Classes {
		c.AncestorClassIRIs = classAncestors[iri]
	}

	computeChildClasses(voc)

	if err := computeObjectPropertyClosures(voc); err != nil {
		return err
	}
	if err := computeDataPropertyClosures(voc); err != nil {
		return err
	}

	closeIndividuals(voc)
	carryForwardSettings(voc, old)

	return nil
}

// normalizeFacts sorts every fact slice so repeated rebuilds of the same
// sources produce identical vocabularies regardless of map iteration order.
func normalizeFacts(voc *Vocabulary) {
	for _, c := range voc.Classes {
		sortEntity(&c.Entity)
		sort.Strings(c.ParentClassIRIs)
	}
	for _, op := range voc.ObjectProperties {
		sortEntity(&op.Entity)
		sort.Strings(op.SuperPropertyIRIs)
		sort.Strings(op.DomainClassIRIs)
		sort.Strings(op.RangeClassIRIs)
	}
	for _, dp := range voc.DataProperties {
		sortEntity(&dp.Entity)
		sort.Strings(dp.SuperPropertyIRIs)
		sort.Strings(dp.DomainClassIRIs)
		sort.Strings(dp.RangeDatatypeIRIs)
	}
	for _, ind := range voc.Individuals {
		sortEntity(&ind.Entity)
		sort.Strings(ind.ClassIRIs)
	}
}

func sortEntity(e *Entity) {
	sort.Strings(e.Labels)
	sort.Strings(e.Comments)
	sort.Strings(e.SourceNames)
}

// closeHierarchy computes the transitive parent closure for every IRI using
// depth-first traversal. A cycle makes the closure unresolvable and is
// reported as a ProcessingError listing the cycle members.
func closeHierarchy(iris []string, parents func(string) []string, cycleMsg string) (map[string][]string, error) {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int)
	closure := make(map[string][]string)

	var stack []string
	var visit func(iri string) error
	visit = func(iri string) error {
		switch state[iri] {
		case done:
			return nil
		case inStack:
			// Extract the cycle from the traversal stack.
			start := 0
			for i, s := range stack {
				if s == iri {
					start = i
					break
				}
			}
			cycle := append([]string{}, stack[start:]...)
			cycle = append(cycle, iri)
			return &ProcessingError{Msg: cycleMsg, CycleIRIs: cycle}
		}

		state[iri] = inStack
		stack = append(stack, iri)

		set := make(map[string]bool)
		for _, parent := range parents(iri) {
			set[parent] = true
			if err := visit(parent); err != nil {
				return err
			}
			for _, ancestor := range closure[parent] {
				set[ancestor] = true
			}
		}

		stack = stack[:len(stack)-1]
		state[iri] = done

		ancestors := make([]string, 0, len(set))
		for a := range set {
			ancestors = append(ancestors, a)
		}
		sort.Strings(ancestors)
		closure[iri] = ancestors
		return nil
	}

	for _, iri := range iris {
		if err := visit(iri); err != nil {
			return nil, err
		}
	}
	return closure, nil
}

// computeChildClasses fills in ChildClassIRIs as the inverse of the direct
// superclass assertions.
func computeChildClasses(voc *Vocabulary) {
	for _, c := range voc.Classes {
		c.ChildClassIRIs = nil
	}
	for iri, c := range voc.Classes {
		for _, parent := range c.ParentClassIRIs {
			if p, ok := voc.Classes[parent]; ok {
				p.ChildClassIRIs = appendUnique(p.ChildClassIRIs, iri)
			}
		}
	}
	for _, c := range voc.Classes {
		sort.Strings(c.ChildClassIRIs)
	}
}

// computeObjectPropertyClosures merges each object property's own domains
// and ranges with those inherited through the superproperty closure.
func computeObjectPropertyClosures(voc *Vocabulary) error {
	iris := make([]string, 0, len(voc.ObjectProperties))
	for iri := range voc.ObjectProperties {
		iris = append(iris, iri)
	}
	sort.Strings(iris)

	supers, err := closeHierarchy(iris, func(iri string) []string {
		if op, ok := voc.ObjectProperties[iri]; ok {
			return op.SuperPropertyIRIs
		}
		return nil
	}, "object property hierarchy is cyclic")
	if err != nil {
		return err
	}

	for iri, op := range voc.ObjectProperties {
		domains := append([]string{}, op.DomainClassIRIs...)
		ranges := append([]string{}, op.RangeClassIRIs...)
		for _, super := range supers[iri] {
			if sp, ok := voc.ObjectProperties[super]; ok {
				for _, d := range sp.DomainClassIRIs {
					domains = appendUnique(domains, d)
				}
				for _, r := range sp.RangeClassIRIs {
					ranges = appendUnique(ranges, r)
				}
			}
		}
		sort.Strings(domains)
		sort.Strings(ranges)
		op.CombinedDomainIRIs = domains
		op.CombinedRangeIRIs = ranges
	}
	return nil
}

// computeDataPropertyClosures does the same for data properties, combining
// domains and literal datatypes.
func computeDataPropertyClosures(voc *Vocabulary) error {
	iris := make([]string, 0, len(voc.DataProperties))
	for iri := range voc.DataProperties {
		iris = append(iris, iri)
	}
	sort.Strings(iris)

	supers, err := closeHierarchy(iris, func(iri string) []string {
		if dp, ok := voc.DataProperties[iri]; ok {
			return dp.SuperPropertyIRIs
		}
		return nil
	}, "data property hierarchy is cyclic")
	if err != nil {
		return err
	}

	for iri, dp := range voc.DataProperties {
		domains := append([]string{}, dp.DomainClassIRIs...)
		ranges := append([]string{}, dp.RangeDatatypeIRIs...)
		for _, super := range supers[iri] {
			if sp, ok := voc.DataProperties[super]; ok {
				for _, d := range sp.DomainClassIRIs {
					domains = appendUnique(domains, d)
				}
				for _, r := range sp.RangeDatatypeIRIs {
					ranges = appendUnique(ranges, r)
				}
			}
		}
		sort.Strings(domains)
		sort.Strings(ranges)
		dp.CombinedDomainIRIs = domains
		dp.CombinedRangeIRIs = ranges
	}
	return nil
}

// closeIndividuals computes each individual's class closure: its direct
// classes plus everything those classes inherit.
func closeIndividuals(voc *Vocabulary) {
	for _, ind := range voc.Individuals {
		set := make(map[string]bool)
		for _, classIRI := range ind.ClassIRIs {
			set[classIRI] = true
			if c, ok := voc.Classes[classIRI]; ok {
				for _, ancestor := range c.AncestorClassIRIs {
					set[ancestor] = true
				}
			}
		}
		closure := make([]string, 0, len(set))
		for iri := range set {
			closure = append(closure, iri)
		}
		sort.Strings(closure)
		ind.AncestorClassIRIs = closure
	}
}

// carryForwardSettings rebuilds the settings map for the new element set.
// Settings recorded in the old vocabulary are kept for IRIs that still
// exist; new IRIs get defaults; IRIs no source declares anymore drop out.
func carryForwardSettings(voc, old *Vocabulary) {
	voc.Settings = make(map[string]Settings)
	for _, iri := range voc.ElementIRIs() {
		if old != nil {
			if s, ok := old.Settings[iri]; ok {
				voc.Settings[iri] = s
				continue
			}
		}
		voc.Settings[iri] = DefaultSettings()
	}
}
