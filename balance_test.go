package ofxtree_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxtree"
)

var _ = Describe("ofxtree", func() {
	Describe("UnpairedTags()", func() {
		DescribeTable("should report tags without a matching close in discovery order",
			func(content string, expected []string) {
				Expect(ofxtree.UnpairedTags(content)).To(Equal(expected))
			},
			Entry("when everything is paired",
				`<OFX><SONRS><CODE>0</CODE></SONRS></OFX>`,
				[]string{}),
			Entry("when a leaf is left open",
				"<OFX><BANKMSGSRSV1><NAME>ACME Bank\n</BANKMSGSRSV1></OFX>",
				[]string{"NAME"}),
			Entry("when several leaves are popped by one close",
				`<OFX><STATUS><CODE>0<SEVERITY>INFO</STATUS></OFX>`,
				[]string{"SEVERITY", "CODE"}),
			Entry("when tags are still open at the end",
				`<OFX><STATUS><CODE>0<SEVERITY>INFO</STATUS>`,
				[]string{"SEVERITY", "CODE", "OFX"}),
			Entry("when a name is popped more than once",
				`<OFX><S><C>0</S><S><C>1</S></OFX>`,
				[]string{"C"}),
			Entry("when a close crosses an open container",
				`<A><B></A></B>`,
				[]string{"B"}),
			Entry("when a close has nothing open",
				`</A><B>`,
				[]string{"B"}),
			Entry("when a name is both popped and left open",
				`<C><X><C>1</X>`,
				[]string{"C"}),
			Entry("when tag names are dotted",
				`<OFX><INTU.BID>1</OFX>`,
				[]string{}),
		)
	})
})
