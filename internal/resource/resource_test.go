package resource_test

import (
	"encoding/xml"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/lagona162-arch/resvalue/internal/resource"
)

var _ = Describe("Resource", func() {
	maps := resource.Resource{Name: "google_maps_api_key", Value: "abc123"}

	Describe("NameFor", func() {
		DescribeTable("derives lowercase resource names",
			func(key, want string) {
				Expect(resource.NameFor(key)).To(Equal(want))
			},
			Entry("upper snake case", "GOOGLE_MAPS_API_KEY", "google_maps_api_key"),
			Entry("dotted", "maps.api.key", "maps_api_key"),
			Entry("dashed", "MAPS-KEY", "maps_key"),
		)
	})

	Describe("ParseFormat", func() {
		It("should accept known formats case-insensitively", func() {
			f, err := resource.ParseFormat("XML")
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(Equal(resource.FormatXML))
		})

		It("should reject unknown formats", func() {
			_, err := resource.ParseFormat("json")
			Expect(err).To(MatchError(resource.ErrUnsupportedFormat))
		})
	})

	Describe("ValidateName", func() {
		It("should reject names Android cannot use", func() {
			Expect(resource.ValidateName("google_maps_api_key")).To(Succeed())
			Expect(resource.ValidateName("Google")).NotTo(Succeed())
			Expect(resource.ValidateName("9key")).NotTo(Succeed())
			Expect(resource.ValidateName("")).NotTo(Succeed())
		})
	})

	Describe("EscapeAndroid", func() {
		DescribeTable("escapes aapt special characters",
			func(in, want string) {
				Expect(resource.EscapeAndroid(in)).To(Equal(want))
			},
			Entry("plain", "abc123", "abc123"),
			Entry("apostrophe", "it's", `it\'s`),
			Entry("quote", `a"b`, `a\"b`),
			Entry("backslash", `a\b`, `a\\b`),
			Entry("leading at", "@key", `\@key`),
			Entry("inner at", "k@y", "k@y"),
			Entry("leading question mark", "?key", `\?key`),
		)
	})

	Describe("Encode", func() {
		It("should render Android string resources", func() {
			out, err := resource.Encode(resource.FormatXML, []resource.Resource{maps})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(HavePrefix(xml.Header))
			Expect(string(out)).To(ContainSubstring(`<string name="google_maps_api_key" translatable="false">abc123</string>`))

			var doc struct {
				Strings []struct {
					Name  string `xml:"name,attr"`
					Value string `xml:",chardata"`
				} `xml:"string"`
			}
			Expect(xml.Unmarshal(out, &doc)).To(Succeed())
			Expect(doc.Strings).To(HaveLen(1))
			Expect(doc.Strings[0].Value).To(Equal("abc123"))
		})

		It("should sort resources by name", func() {
			out, err := resource.Encode(resource.FormatYAML, []resource.Resource{
				{Name: "zeta", Value: "1"},
				{Name: "alpha", Value: "2"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal("alpha: \"2\"\nzeta: \"1\"\n"))
		})

		It("should render yaml that decodes back to the values", func() {
			out, err := resource.Encode(resource.FormatYAML, []resource.Resource{maps})
			Expect(err).NotTo(HaveOccurred())

			decoded := map[string]string{}
			Expect(yaml.Unmarshal(out, &decoded)).To(Succeed())
			Expect(decoded).To(Equal(map[string]string{"google_maps_api_key": "abc123"}))
		})

		It("should render env lines", func() {
			out, err := resource.Encode(resource.FormatEnv, []resource.Resource{maps})
			Expect(err).NotTo(HaveOccurred())

			env, err := gotenv.Unmarshal(string(out))
			Expect(err).NotTo(HaveOccurred())
			Expect(env).To(HaveKeyWithValue("google_maps_api_key", "abc123"))
		})

		It("should refuse empty values", func() {
			_, err := resource.Encode(resource.FormatXML, []resource.Resource{{Name: "k", Value: ""}})
			Expect(err).To(HaveOccurred())
		})

		It("should refuse unknown formats", func() {
			_, err := resource.Encode(resource.Format("ini"), []resource.Resource{maps})
			Expect(err).To(MatchError(resource.ErrUnsupportedFormat))
		})
	})

	Describe("Writer", func() {
		var (
			fs afero.Fs
			w  *resource.Writer
		)

		BeforeEach(func() {
			fs = afero.NewMemMapFs()
			w = resource.NewWriter(fs, resource.FormatXML, slog.New(slog.NewTextHandler(io.Discard, nil)))
		})

		It("should create parent directories and write a read-only file", func() {
			path := "/app/build/generated/res/resvalue/values/resvalue.xml"
			Expect(w.Write(path, []resource.Resource{maps})).To(Succeed())

			info, err := fs.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(resource.ReadOnlyMode))

			data, err := afero.ReadFile(fs, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("abc123"))
		})

		It("should replace an existing file", func() {
			path := "/out/values.xml"
			Expect(w.Write(path, []resource.Resource{maps})).To(Succeed())
			Expect(w.Write(path, []resource.Resource{{Name: "google_maps_api_key", Value: "rotated"}})).To(Succeed())

			data, err := afero.ReadFile(fs, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("rotated"))
			Expect(string(data)).NotTo(ContainSubstring("abc123"))
		})

		It("should leave no temp files behind", func() {
			Expect(w.Write("/out/values.xml", []resource.Resource{maps})).To(Succeed())

			entries, err := afero.ReadDir(fs, "/out")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name()).To(Equal("values.xml"))
		})

		It("should not touch the destination when encoding fails", func() {
			err := w.Write("/out/values.xml", []resource.Resource{{Name: "BAD", Value: "x"}})
			Expect(err).To(HaveOccurred())

			exists, err := afero.Exists(fs, "/out/values.xml")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
