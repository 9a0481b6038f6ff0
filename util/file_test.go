package util_test

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/deskappio/deskapp/util"
)

var _ = Describe("File", func() {

	var (
		tmpDir string
	)

	type TestConfig struct {
		OrgName   string
		Modules   map[string]string
		SomeField int
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "deskapp_util_test_tmp_*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.RemoveAll(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Config", func() {
		Context("in JSON format", func() {
			It("should be written and read successfully", func() {

				m := make(map[string]string)
				m["oink"] = "Oink"
				m["moo.cow"] = "Moo"

				written := &TestConfig{
					OrgName:   "Test Org",
					Modules:   m,
					SomeField: 99,
				}

				err := util.WriteJson(tmpDir+"/testconfig.json", written)
				Expect(err).NotTo(HaveOccurred())

				read, err := util.ReadJson(tmpDir+"/testconfig.json", &TestConfig{})
				Expect(err).NotTo(HaveOccurred())
				Expect(read).NotTo(BeNil())
				Expect(read.(*TestConfig).OrgName).To(BeEquivalentTo(written.OrgName))
				Expect(read.(*TestConfig).Modules["oink"]).To(BeEquivalentTo(written.Modules["oink"]))
				Expect(read.(*TestConfig).Modules["moo.cow"]).To(BeEquivalentTo(written.Modules["moo.cow"]))
				Expect(read.(*TestConfig).SomeField).To(BeEquivalentTo(written.SomeField))

			})

			It("should create missing parent directories", func() {

				written := &TestConfig{SomeField: 1}

				err := util.WriteJson(tmpDir+"/a/b/testconfig.json", written)
				Expect(err).NotTo(HaveOccurred())
				Expect(util.FileExists(tmpDir + "/a/b/testconfig.json")).To(BeTrue())
			})
		})
	})

	Describe("Handle config file without full path", func() {
		Context("config file handling", func() {
			It("should be successful", func() {
				written := &TestConfig{
					SomeField: 123,
				}
				cfgFile := "test_cfg.json"
				defer os.Remove(cfgFile)

				err := util.WriteJson(cfgFile, written)
				Expect(err).NotTo(HaveOccurred())

				read, err := util.ReadJson(cfgFile, &TestConfig{})
				Expect(err).NotTo(HaveOccurred())
				Expect(read).NotTo(BeNil())
			})
		})
	})
})
