package uniprot

import (
	"reflect"
	"strings"
	"testing"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

func TestDecodeAccessions(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "single line",
			lines: []string{"P12345; Q67890;"},
			want:  []string{"P12345", "Q67890"},
		},
		{
			name:  "continuation lines concatenate without separators",
			lines: []string{"P12345; Q67890;", "A0A024R161; A8K9K2;"},
			want:  []string{"P12345", "Q67890", "A0A024R161", "A8K9K2"},
		},
		{
			name:  "no trailing semicolon keeps last element",
			lines: []string{"P12345; Q67890"},
			want:  []string{"P12345", "Q67890"},
		},
		{
			name:  "blank content",
			lines: []string{"   "},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAccessions(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeAccessions(%q) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}

func TestDecodeCrossReferences(t *testing.T) {
	t.Run("plain reference", func(t *testing.T) {
		refs, err := decodeCrossReferences([]string{"EMBL; X12345; AAA99999.1; -; mRNA."})
		if err != nil {
			t.Fatalf("decodeCrossReferences: %v", err)
		}
		got := refs["EMBL"]
		if len(got) != 1 {
			t.Fatalf("expected 1 EMBL ref, got %d", len(got))
		}
		want := CrossRef{ID: "X12345", OptionalInfo: []string{"AAA99999.1", "-", "mRNA"}}
		if !reflect.DeepEqual(got[0], want) {
			t.Errorf("ref = %+v, want %+v", got[0], want)
		}
	})

	t.Run("isoform annotation", func(t *testing.T) {
		// Scenario C.
		refs, err := decodeCrossReferences([]string{"Ensembl; ENST00000001; ENSP00000001. [P12345-2]."})
		if err != nil {
			t.Fatalf("decodeCrossReferences: %v", err)
		}
		got := refs["Ensembl"]
		if len(got) != 1 {
			t.Fatalf("expected 1 Ensembl ref, got %d", len(got))
		}
		want := CrossRef{
			ID:            "ENST00000001",
			OptionalInfo:  []string{"ENSP00000001"},
			TargetIsoform: "P12345-2",
		}
		if !reflect.DeepEqual(got[0], want) {
			t.Errorf("ref = %+v, want %+v", got[0], want)
		}
	})

	t.Run("repeated abbreviation preserves order", func(t *testing.T) {
		refs, err := decodeCrossReferences([]string{
			"GO; GO:0000001; C:outer membrane; IEA:InterPro.",
			"GO; GO:0000002; F:binding; IDA:UniProtKB.",
		})
		if err != nil {
			t.Fatalf("decodeCrossReferences: %v", err)
		}
		got := refs["GO"]
		if len(got) != 2 || got[0].ID != "GO:0000001" || got[1].ID != "GO:0000002" {
			t.Errorf("GO refs out of order: %+v", got)
		}
	})

	t.Run("missing trailing dot", func(t *testing.T) {
		_, err := decodeCrossReferences([]string{"EMBL; X12345; AAA99999"})
		if err == nil {
			t.Fatal("expected error for missing trailing dot")
		}
		if !xerrors.IsKind(err, xerrors.KindMalformedField) {
			t.Errorf("error kind = %v, want KindMalformedField", xerrors.GetKind(err))
		}
	})

	t.Run("too few elements", func(t *testing.T) {
		_, err := decodeCrossReferences([]string{"EMBL"})
		if err == nil {
			t.Fatal("expected error for single-element DR line")
		}
	})
}

func TestDecodeDescription(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single top-level name keeps trailing space",
			lines: []string{"RecName: Full=Test protein;"},
			want:  "Test protein ",
		},
		{
			// Scenario E.
			name: "contains sub-name ranks below top level",
			lines: []string{
				"RecName: Full=Alpha;",
				"Contains:",
				"  RecName: Full=Beta;",
			},
			want: "Alpha Beta",
		},
		{
			name: "multiple top-level names joined by semicolon",
			lines: []string{
				"RecName: Full=Alpha;",
				"SubName: Full=Gamma;",
			},
			want: "Alpha;Gamma ",
		},
		{
			name:  "evidence block stripped with leading whitespace",
			lines: []string{"RecName: Full=Alpha {ECO:0000255|HAMAP-Rule:MF_01588};"},
			want:  "Alpha ",
		},
		{
			name:  "short names ignored",
			lines: []string{"RecName: Short=Alp;"},
			want:  "",
		},
		{
			name:  "no lines",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeDescription(tt.lines); got != tt.want {
				t.Errorf("decodeDescription(%q) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}

func TestDecodeGeneNames(t *testing.T) {
	t.Run("separator splits groups", func(t *testing.T) {
		// Scenario D.
		groups, err := decodeGeneNames([]string{
			"Name=gene1; Synonyms=alias1, alias2;",
			"and",
			"Name=gene2;",
		})
		if err != nil {
			t.Fatalf("decodeGeneNames: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].Name != "gene1" {
			t.Errorf("groups[0].Name = %q, want gene1", groups[0].Name)
		}
		if !reflect.DeepEqual(groups[0].Values["Synonyms"], []string{"alias1", "alias2"}) {
			t.Errorf("groups[0] synonyms = %q", groups[0].Values["Synonyms"])
		}
		if groups[1].Name != "gene2" || len(groups[1].Values) != 0 {
			t.Errorf("groups[1] = %+v, want bare gene2", groups[1])
		}
	})

	t.Run("ordered locus names are a list", func(t *testing.T) {
		groups, err := decodeGeneNames([]string{"Name=thrA; OrderedLocusNames=b0002, c0003;"})
		if err != nil {
			t.Fatalf("decodeGeneNames: %v", err)
		}
		if !reflect.DeepEqual(groups[0].Values["OrderedLocusNames"], []string{"b0002", "c0003"}) {
			t.Errorf("OrderedLocusNames = %q", groups[0].Values["OrderedLocusNames"])
		}
	})

	t.Run("synonyms without name", func(t *testing.T) {
		_, err := decodeGeneNames([]string{"Synonyms=alias1;"})
		if err == nil {
			t.Fatal("expected error for Synonyms without Name")
		}
		if !xerrors.IsKind(err, xerrors.KindMalformedField) {
			t.Errorf("error kind = %v, want KindMalformedField", xerrors.GetKind(err))
		}
	})

	t.Run("token without equals sign", func(t *testing.T) {
		_, err := decodeGeneNames([]string{"Name gene1;"})
		if err == nil {
			t.Fatal("expected error for token without =")
		}
	})

	t.Run("group split across lines concatenates", func(t *testing.T) {
		groups, err := decodeGeneNames([]string{
			"Name=gene1; Synonyms=alias1,",
			"alias2;",
		})
		if err != nil {
			t.Fatalf("decodeGeneNames: %v", err)
		}
		if !reflect.DeepEqual(groups[0].Values["Synonyms"], []string{"alias1", "alias2"}) {
			t.Errorf("synonyms = %q", groups[0].Values["Synonyms"])
		}
	})
}

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		line    string
		want    Status
		wantErr bool
	}{
		{line: "TEST_HUMAN              Reviewed;         100 AA.", want: StatusReviewed},
		{line: "A0A024R161_HUMAN        Unreviewed;       105 AA.", want: StatusUnreviewed},
		{line: "lowercase reviewed;", wantErr: true},
		{line: "TEST_HUMAN Provisional;", wantErr: true},
	}

	for _, tt := range tests {
		got, err := decodeStatus([]string{tt.line})
		if tt.wantErr {
			if err == nil {
				t.Errorf("decodeStatus(%q): expected error", tt.line)
			}
			continue
		}
		if err != nil {
			t.Errorf("decodeStatus(%q): %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeStatus(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestDecodeEvidenceLevel(t *testing.T) {
	for level, line := range map[int]string{
		1: "1: Evidence at protein level;",
		5: "5: Uncertain;",
	} {
		got, err := decodeEvidenceLevel([]string{line})
		if err != nil {
			t.Errorf("decodeEvidenceLevel(%q): %v", line, err)
			continue
		}
		if got != level {
			t.Errorf("decodeEvidenceLevel(%q) = %d, want %d", line, got, level)
		}
	}

	// Scenario F.
	if _, err := decodeEvidenceLevel([]string{"9: Out of range;"}); err == nil {
		t.Error("expected error for evidence level 9")
	} else if !xerrors.IsKind(err, xerrors.KindMalformedField) {
		t.Errorf("error kind = %v, want KindMalformedField", xerrors.GetKind(err))
	}
}

func TestDecodeTaxonomy(t *testing.T) {
	t.Run("single entry", func(t *testing.T) {
		ids, err := decodeTaxonomy([]string{"NCBI_TaxID=9606;"})
		if err != nil {
			t.Fatalf("decodeTaxonomy: %v", err)
		}
		if !reflect.DeepEqual(ids, []int{9606}) {
			t.Errorf("ids = %v, want [9606]", ids)
		}
	})

	t.Run("evidence block tolerated", func(t *testing.T) {
		ids, err := decodeTaxonomy([]string{"NCBI_TaxID=9606 {ECO:0000312|Proteomes:UP000005640};"})
		if err != nil {
			t.Fatalf("decodeTaxonomy: %v", err)
		}
		if !reflect.DeepEqual(ids, []int{9606}) {
			t.Errorf("ids = %v, want [9606]", ids)
		}
	})

	t.Run("multiple entries preserve order", func(t *testing.T) {
		ids, err := decodeTaxonomy([]string{"NCBI_TaxID=9606; NCBI_TaxID=10090;"})
		if err != nil {
			t.Fatalf("decodeTaxonomy: %v", err)
		}
		if !reflect.DeepEqual(ids, []int{9606, 10090}) {
			t.Errorf("ids = %v, want [9606 10090]", ids)
		}
	})

	t.Run("ignored qualifier contributes nothing", func(t *testing.T) {
		ids, err := decodeTaxonomy([]string{"TaxID=9606;"})
		if err != nil {
			t.Fatalf("decodeTaxonomy: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("ids = %v, want none", ids)
		}
	})

	t.Run("unknown qualifier", func(t *testing.T) {
		_, err := decodeTaxonomy([]string{"FlyBase_TaxID=7227;"})
		if err == nil {
			t.Fatal("expected error for unknown qualifier")
		}
		if !xerrors.IsKind(err, xerrors.KindUnknownTaxonDB) {
			t.Errorf("error kind = %v, want KindUnknownTaxonDB", xerrors.GetKind(err))
		}
		if !strings.Contains(err.Error(), "FlyBase_TaxID") {
			t.Errorf("error %q should name the qualifier", err.Error())
		}
	})

	t.Run("qualifier without code", func(t *testing.T) {
		for _, line := range []string{"NCBI_TaxID;", "NCBI_TaxID=;"} {
			_, err := decodeTaxonomy([]string{line})
			if err == nil {
				t.Errorf("decodeTaxonomy(%q): expected error", line)
				continue
			}
			if !xerrors.IsKind(err, xerrors.KindMalformedField) {
				t.Errorf("decodeTaxonomy(%q) kind = %v, want KindMalformedField", line, xerrors.GetKind(err))
			}
		}
	})

	t.Run("non-numeric code", func(t *testing.T) {
		_, err := decodeTaxonomy([]string{"NCBI_TaxID=abc;"})
		if err == nil {
			t.Fatal("expected error for non-numeric code")
		}
	})
}

func TestDecodeSequence(t *testing.T) {
	tests := []struct {
		name    string
		sq      []string
		payload []string
		want    Sequence
	}{
		{
			name:    "peptide",
			sq:      []string{"SEQUENCE   5 AA;  500 MW;  XXXX CRC64;"},
			payload: []string{"MAKER"},
			want:    Sequence{Type: SequencePeptide, Seq: "MAKER"},
		},
		{
			name:    "dna unit",
			sq:      []string{"SEQUENCE   6 BP;"},
			payload: []string{"ACGTAC"},
			want:    Sequence{Type: SequenceDNA, Seq: "ACGTAC"},
		},
		{
			name:    "unknown unit",
			sq:      []string{"SEQUENCE   5 XX;"},
			payload: []string{"MAKER"},
			want:    Sequence{Type: SequenceUndefined, Seq: "MAKER"},
		},
		{
			name: "payload whitespace and counts stripped",
			sq:   []string{"SEQUENCE   120 AA;  13243 MW;  D5587F5DE6AFAEC6 CRC64;"},
			payload: []string{
				"MAFSAEDVLK EYDRRRRMEA LLLSLYYPND RKLLDYKEWS PPRVQVECPK    60",
				"APVEWNNPPS EKGLIVGHFS GIKYKGEKAQ ASEVDVNKMC CWVSKFKDAM   120",
			},
			want: Sequence{
				Type: SequencePeptide,
				Seq:  "MAFSAEDVLKEYDRRRRMEALLLSLYYPNDRKLLDYKEWSPPRVQVECPKAPVEWNNPPSEKGLIVGHFSGIKYKGEKAQASEVDVNKMCCWVSKFKDAM",
			},
		},
		{
			name:    "case-insensitive header",
			sq:      []string{"Sequence 5 aa;"},
			payload: []string{"MAKER"},
			want:    Sequence{Type: SequencePeptide, Seq: "MAKER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeSequence(tt.sq, tt.payload)
			if got != tt.want {
				t.Errorf("decodeSequence() = %+v, want %+v", got, tt.want)
			}
			for _, r := range got.Seq {
				if r == ' ' || r == '\t' || (r >= '0' && r <= '9') {
					t.Errorf("sequence contains whitespace or digit: %q", got.Seq)
					break
				}
			}
		})
	}
}
