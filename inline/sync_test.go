package inline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Install", func() {
	var dir string

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "ok")
	})

	install := func(tests *Tests, dryRun bool) (*SyncResult, error) {
		return Install(tests, Accept, dir, SyncOptions{Extension: "rs", DryRun: dryRun})
	}

	mustSnapshot := func() map[string]string {
		files, err := snapshot(dir)
		Expect(err).NotTo(HaveOccurred())
		return files
	}

	It("creates the directory and numbers new tests in declaration order", func() {
		result, err := install(testsOf(Accept, "zeta", "z\n", "alpha", "a\n"), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Created).To(HaveLen(2))
		Expect(result.Changed()).To(BeTrue())

		Expect(mustSnapshot()).To(Equal(map[string]string{
			"0001_zeta.rs":  "z\n",
			"0002_alpha.rs": "a\n",
		}))
	})

	It("writes nothing on a second run", func() {
		tests := testsOf(Accept, "a", "1\n", "b", "2\n")
		_, err := install(tests, false)
		Expect(err).NotTo(HaveOccurred())

		before := mustSnapshot()
		info, err := os.Stat(filepath.Join(dir, "0001_a.rs"))
		Expect(err).NotTo(HaveOccurred())

		result, err := install(tests, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Changed()).To(BeFalse())
		Expect(result.Unchanged).To(HaveLen(2))
		Expect(cmp.Diff(before, mustSnapshot())).To(BeEmpty())

		after, err := os.Stat(filepath.Join(dir, "0001_a.rs"))
		Expect(err).NotTo(HaveOccurred())
		Expect(after.ModTime()).To(Equal(info.ModTime()))
	})

	It("keeps identifiers stable when tests are added and reordered", func() {
		_, err := install(testsOf(Accept, "a", "1\n", "b", "2\n"), false)
		Expect(err).NotTo(HaveOccurred())

		result, err := install(testsOf(Accept, "new", "3\n", "b", "2\n", "a", "1\n"), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Created).To(HaveLen(1))
		Expect(result.Created[0].ID).To(Equal(3))

		Expect(mustSnapshot()).To(Equal(map[string]string{
			"0001_a.rs":   "1\n",
			"0002_b.rs":   "2\n",
			"0003_new.rs": "3\n",
		}))
	})

	It("rewrites only fixtures whose text changed", func() {
		_, err := install(testsOf(Accept, "a", "1\n", "b", "2\n"), false)
		Expect(err).NotTo(HaveOccurred())

		result, err := install(testsOf(Accept, "a", "1\n", "b", "two\n"), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Created).To(BeEmpty())
		Expect(result.Updated).To(HaveLen(1))
		Expect(result.Updated[0].Path).To(Equal(filepath.Join(dir, "0002_b.rs")))
		Expect(result.Updated[0].Previous).To(Equal("2\n"))
		Expect(result.Paths()).To(Equal([]string{filepath.Join(dir, "0002_b.rs")}))

		Expect(mustSnapshot()).To(Equal(map[string]string{
			"0001_a.rs": "1\n",
			"0002_b.rs": "two\n",
		}))
	})

	It("treats CRLF checkouts as unchanged", func() {
		Expect(os.MkdirAll(dir, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "0001_a.rs"), []byte("x\r\ny\r\n"), 0644)).To(Succeed())

		result, err := install(testsOf(Accept, "a", "x\ny\n"), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Changed()).To(BeFalse())
		Expect(mustSnapshot()["0001_a.rs"]).To(Equal("x\r\ny\r\n"))
	})

	It("fails on deleted tests before writing anything", func() {
		_, err := install(testsOf(Accept, "gone", "1\n", "kept", "2\n"), false)
		Expect(err).NotTo(HaveOccurred())
		before := mustSnapshot()

		_, err = install(testsOf(Accept, "kept", "changed\n", "brand_new", "3\n"), false)
		var deleted *DeletedTestError
		Expect(errors.As(err, &deleted)).To(BeTrue())
		Expect(deleted.Names).To(Equal([]string{"gone"}))
		Expect(deleted.Outcome).To(Equal(Accept))
		Expect(err.Error()).To(ContainSubstring("gone"))

		Expect(cmp.Diff(before, mustSnapshot())).To(BeEmpty())
	})

	It("lists every deleted test", func() {
		_, err := install(testsOf(Accept, "b", "1\n", "a", "2\n", "c", "3\n"), false)
		Expect(err).NotTo(HaveOccurred())

		_, err = install(testsOf(Accept, "c", "3\n"), false)
		Expect(err).To(MatchError(ContainSubstring("tests are deleted")))
		var deleted *DeletedTestError
		Expect(errors.As(err, &deleted)).To(BeTrue())
		Expect(deleted.Names).To(Equal([]string{"a", "b"}))
	})

	It("ignores files that are not fixtures", func() {
		Expect(os.MkdirAll(dir, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "scratch.rs"), []byte("tmp"), 0644)).To(Succeed())

		result, err := install(testsOf(Accept, "a", "1\n"), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Created[0].ID).To(Equal(1))
	})

	It("refuses to allocate identifiers wider than the file name prefix", func() {
		var pairs []string
		for i := 0; i <= MaxIdentifier; i++ {
			pairs = append(pairs, fmt.Sprintf("t%d", i), "x\n")
		}

		_, err := install(testsOf(Accept, pairs...), false)
		var tooMany *TooManyFixturesError
		Expect(errors.As(err, &tooMany)).To(BeTrue())
		Expect(tooMany.New).To(Equal(MaxIdentifier + 1))

		_, err = os.Stat(filepath.Join(dir, FixtureFileName(1, "t0", "rs")))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("fills identifiers up to the last four digit one", func() {
		var pairs []string
		for i := 0; i < MaxIdentifier; i++ {
			pairs = append(pairs, fmt.Sprintf("t%d", i), "x\n")
		}

		result, err := install(testsOf(Accept, pairs...), true)
		Expect(err).NotTo(HaveOccurred())
		last := result.Created[len(result.Created)-1]
		Expect(last.Path).To(Equal(filepath.Join(dir, "9999_t9998.rs")))

		id, name, ok := ParseFixtureFileName(filepath.Base(last.Path), "rs")
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(MaxIdentifier))
		Expect(name).To(Equal("t9998"))
	})

	Context("in dry run mode", func() {
		It("reports changes without touching the filesystem", func() {
			result, err := install(testsOf(Accept, "a", "1\n"), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DryRun).To(BeTrue())
			Expect(result.Changed()).To(BeTrue())
			Expect(result.Created[0].Path).To(Equal(filepath.Join(dir, "0001_a.rs")))

			_, err = os.Stat(dir)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("still detects deleted tests", func() {
			_, err := install(testsOf(Accept, "a", "1\n"), false)
			Expect(err).NotTo(HaveOccurred())

			_, err = install(testsOf(Accept, "b", "2\n"), true)
			var deleted *DeletedTestError
			Expect(errors.As(err, &deleted)).To(BeTrue())
		})
	})
})
