package uniprot

import (
	"regexp"
	"strconv"
	"strings"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// Per-prefix grammars. Every decoder is pure: raw line content in,
// structured sub-values out. Errors carry the prefix and enough of the
// offending content to locate the record in the input file.

const decodeOp xerrors.Op = "uniprot.decode"

var (
	semicolonRe = regexp.MustCompile(`\s*;\s*`)
	commaRe     = regexp.MustCompile(`\s*,\s*`)

	// Trailing element of a DR line: base text, an optional isoform
	// annotation, and the mandatory closing dot.
	drTrailerRe = regexp.MustCompile(`^(.*?)\.?\s*(?:\[\s*([^\[\]]+?)\s*\])?\.$`)

	// DE lines contributing to the description. Leading whitespace
	// distinguishes top-level names from Contains/Includes sub-names.
	deNameRe = regexp.MustCompile(`^(\s*)(?:RecName|SubName):\s*Full=([^;]+)`)

	// Evidence-code blocks decorate DE names and OX entries.
	evidenceBlockRe = regexp.MustCompile(`\s*\{[^}]*\}`)

	idStatusRe = regexp.MustCompile(`^[0-9A-Z_]+\s+(Reviewed|Unreviewed)\s*;`)
	peLevelRe  = regexp.MustCompile(`^([1-5])\s*:`)

	sqHeaderRe = regexp.MustCompile(`(?i)^sequence\s+\d+\s+(\w+);`)
	seqCountRe = regexp.MustCompile(`\s+\d+\s*$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// sequenceUnits maps the SQ unit token to the sequence type. Process-wide
// immutable.
var sequenceUnits = map[string]SequenceType{
	"AA": SequencePeptide,
	"BP": SequenceDNA,
}

// decodeSemicolonList concatenates lines without added separators and
// splits on semicolons. Used for AC and RG, whose values never contain
// a semicolon.
func decodeSemicolonList(lines []string) []string {
	joined := strings.Join(lines, "")
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := semicolonRe.Split(joined, -1)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// decodeAccessions decodes AC lines. The first element is the primary
// accession, the rest secondary, input order preserved.
func decodeAccessions(lines []string) []string {
	return decodeSemicolonList(lines)
}

// decodeCitationGroups decodes RG lines.
func decodeCitationGroups(lines []string) []string {
	return decodeSemicolonList(lines)
}

// decodeCrossReferences decodes DR lines into resource abbreviation →
// ordered cross-references.
func decodeCrossReferences(lines []string) (map[string][]CrossRef, error) {
	refs := make(map[string][]CrossRef)
	for _, line := range lines {
		parts := semicolonRe.Split(line, -1)
		if len(parts) < 2 {
			return nil, xerrors.MalformedField(decodeOp, "DR", line)
		}
		abbrev := parts[0]
		ref := CrossRef{ID: parts[1]}
		if info := parts[2:]; len(info) > 0 {
			last := info[len(info)-1]
			m := drTrailerRe.FindStringSubmatch(last)
			if m == nil {
				return nil, xerrors.MalformedField(decodeOp, "DR", last)
			}
			info[len(info)-1] = m[1]
			ref.TargetIsoform = m[2]
			ref.OptionalInfo = info
		}
		refs[abbrev] = append(refs[abbrev], ref)
	}
	return refs, nil
}

// decodeDescription reduces the DE block to a single string: top-level
// RecName/SubName full names joined by ";", then one space, then the
// indented (Contains/Includes) names joined by " ". This rendering is the
// contract downstream loaders depend on. Empty result means no
// description.
func decodeDescription(lines []string) string {
	var topLevel, sub []string
	for _, line := range lines {
		m := deNameRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := evidenceBlockRe.ReplaceAllString(m[2], "")
		if m[1] == "" {
			topLevel = append(topLevel, name)
		} else {
			sub = append(sub, name)
		}
	}
	if len(topLevel) == 0 && len(sub) == 0 {
		return ""
	}
	return strings.Join(topLevel, ";") + " " + strings.Join(sub, " ")
}

// decodeGeneNames decodes GN lines. A line whose entire content is "and"
// separates distinct gene-name groups; within a group, Key=Value; tokens
// accumulate, with Name scalar and everything else a comma-separated list.
func decodeGeneNames(lines []string) ([]GeneNameGroup, error) {
	groups := [][]string{}
	current := []string{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "and" {
			groups = append(groups, current)
			current = []string{}
			continue
		}
		current = append(current, line)
	}
	groups = append(groups, current)

	out := []GeneNameGroup{}
	for _, groupLines := range groups {
		joined := strings.Join(groupLines, "")
		if strings.TrimSpace(joined) == "" {
			continue
		}
		group := GeneNameGroup{Values: make(map[string][]string)}
		for _, token := range strings.Split(joined, ";") {
			if strings.TrimSpace(token) == "" {
				continue
			}
			key, value, found := strings.Cut(token, "=")
			if !found {
				return nil, xerrors.MalformedField(decodeOp, "GN", token)
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key == "Name" {
				group.Name = value
			} else {
				group.Values[key] = commaRe.Split(value, -1)
			}
		}
		if _, hasSynonyms := group.Values["Synonyms"]; hasSynonyms && group.Name == "" {
			return nil, xerrors.MalformedField(decodeOp, "GN", "Synonyms without Name: "+joined)
		}
		out = append(out, group)
	}
	return out, nil
}

// decodeStatus decodes the single ID line into the curation status.
func decodeStatus(lines []string) (Status, error) {
	m := idStatusRe.FindStringSubmatch(lines[0])
	if m == nil {
		return "", xerrors.MalformedField(decodeOp, "ID", lines[0])
	}
	return Status(m[1]), nil
}

// decodeEvidenceLevel decodes the single PE line into the 1..5
// protein-existence level.
func decodeEvidenceLevel(lines []string) (int, error) {
	m := peLevelRe.FindStringSubmatch(lines[0])
	if m == nil {
		return 0, xerrors.MalformedField(decodeOp, "PE", lines[0])
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, xerrors.MalformedField(decodeOp, "PE", lines[0])
	}
	return level, nil
}

// decodeSequence decodes the SQ declaration line and the two-space-prefix
// payload lines. Mid-sequence counts and all whitespace are stripped from
// the payload.
func decodeSequence(sqLines, payload []string) Sequence {
	seq := Sequence{Type: SequenceUndefined}
	if len(sqLines) > 0 {
		if m := sqHeaderRe.FindStringSubmatch(sqLines[0]); m != nil {
			if t, ok := sequenceUnits[strings.ToUpper(m[1])]; ok {
				seq.Type = t
			}
		}
	}
	var b strings.Builder
	for _, line := range payload {
		line = seqCountRe.ReplaceAllString(line, "")
		b.WriteString(spaceRe.ReplaceAllString(line, ""))
	}
	seq.Seq = b.String()
	return seq
}
