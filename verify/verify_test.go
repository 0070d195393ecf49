package verify_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/verify"
)

var _ = Describe("RunLint", func() {
	It("finds no issues for a plain default config", func() {
		cfg, err := config.NewBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		Expect(verify.RunLint(cfg, nil)).To(BeEmpty())
	})

	It("flags a missing routing table filename for table-based routing", func() {
		cfg := config.Config{
			MeshDimX: 2, MeshDimY: 2, BufferDepth: 4,
			RoutingAlgorithm: routing.TableBased,
		}

		issues := verify.RunLint(cfg, nil)
		Expect(issues).To(ContainElement(HaveField("Type", verify.IssueConfig)))
	})

	It("flags a traffic table whose dimensions don't match the config", func() {
		cfg, err := config.NewBuilder().WithMeshDim(2, 2).Build()
		Expect(err).NotTo(HaveOccurred())

		table, err := pe.LoadTable(strings.NewReader("0 1:1.0\n"), 4, 4)
		Expect(err).NotTo(HaveOccurred())

		issues := verify.RunLint(cfg, table)
		Expect(issues).To(ContainElement(HaveField("Type", verify.IssueTable)))
	})

	It("flags a traffic table where every node is never_transmit", func() {
		cfg, err := config.NewBuilder().WithMeshDim(2, 2).Build()
		Expect(err).NotTo(HaveOccurred())

		table, err := pe.LoadTable(strings.NewReader(""), 2, 2)
		Expect(err).NotTo(HaveOccurred())

		issues := verify.RunLint(cfg, table)
		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Message).To(ContainSubstring("never_transmit"))
	})
})

var _ = Describe("Report", func() {
	It("renders a clean report for an issue-free config", func() {
		cfg, err := config.NewBuilder().Build()
		Expect(err).NotTo(HaveOccurred())

		r := verify.NewReport(cfg, nil)
		Expect(r.OK()).To(BeTrue())

		var buf bytes.Buffer
		r.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("No issues found"))
	})

	It("renders found issues", func() {
		cfg := config.Config{
			MeshDimX: 0, MeshDimY: 2, BufferDepth: 4,
		}

		r := verify.NewReport(cfg, nil)
		Expect(r.OK()).To(BeFalse())

		var buf bytes.Buffer
		r.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("Found 1 issue"))
	})
})
