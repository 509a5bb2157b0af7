package render

// spacer decides where blank separator lines go between sections. It is
// fed every section in order; advance reports whether a blank line belongs
// before the section it was given.
type spacer struct {
	needsBlank   bool
	prevNesting  []Container
	prevWasBlank bool
	prevInList   bool
}

func (s *spacer) advance(sec *Section) bool {
	inList := listDepth(sec.Nesting) > 0
	isBlank := sec.Content.IsBlank()

	nestingChange := typePrefixOf(s.prevNesting, sec.Nesting) || typePrefixOf(sec.Nesting, s.prevNesting)

	currDepth := listDepth(sec.Nesting)
	prevDepth := listDepth(s.prevNesting)

	sameTopLevelList := inList && s.prevInList &&
		currDepth == 1 && prevDepth == 1 &&
		sameFirstList(sec.Nesting, s.prevNesting)
	sameNestedContext := inList && s.prevInList && currDepth > 1 && prevDepth > 1
	sameListContext := sameTopLevelList || sameNestedContext

	// Leaving a nested list for a sibling top-level list still needs a
	// separator, even though the nesting shrank.
	exitingToNewTopLevel := nestingChange && currDepth == 1 && prevDepth > 1 &&
		!firstListContainedIn(sec.Nesting, s.prevNesting)

	emit := s.needsBlank &&
		(!sameListContext || sec.ListContinuation) &&
		!isBlank &&
		!s.prevWasBlank &&
		(!nestingChange || exitingToNewTopLevel)

	s.needsBlank = sec.Content.Kind != ContentHeader
	s.prevNesting = append(s.prevNesting[:0:0], sec.Nesting...)
	s.prevWasBlank = isBlank
	s.prevInList = inList
	return emit
}

// typePrefixOf reports whether a is a strictly shorter, non-empty prefix
// of b when comparing container kinds only.
func typePrefixOf(a, b []Container) bool {
	if len(a) == 0 || len(a) >= len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
	}
	return true
}

func listDepth(nesting []Container) int {
	depth := 0
	for _, c := range nesting {
		if c.Kind == ContainerList {
			depth++
		}
	}
	return depth
}

func firstList(nesting []Container) (Container, bool) {
	for _, c := range nesting {
		if c.Kind == ContainerList {
			return c, true
		}
	}
	return Container{}, false
}

func sameFirstList(a, b []Container) bool {
	ca, oka := firstList(a)
	cb, okb := firstList(b)
	return oka && okb && ca == cb
}

// firstListContainedIn reports whether a's first list container appears
// anywhere in b. Vacuously true when a has no list container.
func firstListContainedIn(a, b []Container) bool {
	ca, ok := firstList(a)
	if !ok {
		return true
	}
	for _, c := range b {
		if c == ca {
			return true
		}
	}
	return false
}
