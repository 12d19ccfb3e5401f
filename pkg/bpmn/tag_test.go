package bpmn

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/bpmndot/pkg/errors"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Tag
		wantErr bool
	}{
		{
			name: "bpmn element",
			raw:  "{http://www.omg.org/spec/BPMN/20100524/MODEL}serviceTask",
			want: BPMNTag("serviceTask"),
		},
		{
			name: "vendor element",
			raw:  "{http://activiti.org/bpmn}taskListener",
			want: Tag{Namespace: ActivitiNamespace, Local: "taskListener"},
		},
		{
			name: "empty namespace",
			raw:  "{}task",
			want: Tag{Local: "task"},
		},
		{
			name:    "missing braces",
			raw:     "serviceTask",
			wantErr: true,
		},
		{
			name:    "unterminated namespace",
			raw:     "{urn:x serviceTask",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidTag) {
					t.Errorf("ParseTag(%q) error = %v, want INVALID_TAG", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTag(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseTag(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTagRoundTrip(t *testing.T) {
	tags := []Tag{
		BPMNTag("startEvent"),
		{Namespace: ActivitiNamespace, Local: "taskListener"},
		{Namespace: "urn:{odd}", Local: "x"},
		{},
	}

	for _, tag := range tags {
		got, err := ParseTag(tag.String())
		if err != nil {
			t.Fatalf("ParseTag(%q) error = %v", tag.String(), err)
		}
		if got != tag {
			t.Errorf("ParseTag(%q) = %+v, want %+v", tag.String(), got, tag)
		}
	}
}

func TestTagIsBPMN(t *testing.T) {
	if !BPMNTag("endEvent").IsBPMN("endEvent") {
		t.Error("IsBPMN() = false, want true")
	}
	if (Tag{Namespace: ActivitiNamespace, Local: "endEvent"}).IsBPMN("endEvent") {
		t.Error("IsBPMN() = true for vendor namespace, want false")
	}
}

func TestTagOfNamespaces(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:x="urn:other" xmlns:act="http://activiti.org/bpmn">
  <process id="p">
    <serviceTask id="t" act:class="com.acme.Foo" x:class="wrong"/>
    <x:task id="other"/>
    <plain xmlns="" id="bare"/>
  </process>
</definitions>`)
	if err != nil {
		t.Fatal(err)
	}
	process := doc.Root().ChildElements()[0]
	children := process.ChildElements()

	tests := []struct {
		name string
		elem *etree.Element
		want Tag
	}{
		{"default namespace inherited", children[0], BPMNTag("serviceTask")},
		{"prefixed", children[1], Tag{Namespace: "urn:other", Local: "task"}},
		{"default namespace reset", children[2], Tag{Local: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagOf(tt.elem); got != tt.want {
				t.Errorf("TagOf() = %v, want %v", got, tt.want)
			}
		})
	}

	if class, ok := nsAttr(children[0], ActivitiNamespace, "class"); !ok || class != "com.acme.Foo" {
		t.Errorf("nsAttr(activiti, class) = %q, %v, want com.acme.Foo", class, ok)
	}
	if _, ok := nsAttr(children[0], ActivitiNamespace, "id"); ok {
		t.Error("nsAttr should not match an unqualified attribute")
	}
}
