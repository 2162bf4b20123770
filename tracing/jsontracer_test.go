package tracing

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/tiersim/datarecording"
	"github.com/sarchlab/tiersim/sim"
)

var _ = Describe("JSONTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		buf        *bytes.Buffer
		tracer     *JSONTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		buf = new(bytes.Buffer)
		tracer = NewJSONTracer(timeTeller, buf)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write an empty array", func() {
		tracer.Close()
		tracer.Close()

		tasks, err := ReadTasks(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(BeEmpty())
	})

	It("should write completed tasks with their times", func() {
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(5))
		tracer.StartTask(Task{ID: "1", Kind: "access", What: "A0", Where: "S"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(5))
		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "disk"}}})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(7))
		tracer.StartTask(Task{ID: "2", Kind: "access", What: "A1", Where: "S"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(105))
		tracer.EndTask(Task{ID: "1"})
		tracer.Close()

		tasks, err := ReadTasks(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(1))
		Expect(tasks[0].ID).To(Equal("1"))
		Expect(tasks[0].StartTime).To(Equal(sim.VTimeInCycle(5)))
		Expect(tasks[0].EndTime).To(Equal(sim.VTimeInCycle(105)))
		Expect(tasks[0].Duration()).To(Equal(sim.VTimeInCycle(100)))
		Expect(tasks[0].Steps).To(Equal([]TaskStep{{Time: 5, What: "disk"}}))
	})

	It("should ignore tasks it has not seen start", func() {
		tracer.EndTask(Task{ID: "x"})
		tracer.StepTask(Task{ID: "x", Steps: []TaskStep{{What: "cache"}}})
		tracer.Close()

		tasks, err := ReadTasks(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(BeEmpty())
	})
})

var _ = Describe("Trace files", func() {
	for _, c := range []Compression{
		CompressionNone, CompressionLZ4, CompressionSnappy,
	} {
		compression := c

		It("should read back a trace compressed with "+string(compression), func() {
			path := filepath.Join(GinkgoT().TempDir(), "trace"+compression.Extension())

			w, name, err := CreateTraceFile(path, compression)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal(path))

			engine := sim.NewSerialEngine()
			tracer := NewJSONTracer(engine, w)
			tracer.StartTask(Task{ID: "1", Kind: "process", What: "P1", Where: "S"})
			tracer.EndTask(Task{ID: "1"})
			tracer.Close()
			Expect(w.Close()).To(Succeed())

			r, err := OpenTraceFile(path, compression)
			Expect(err).NotTo(HaveOccurred())
			defer r.Close()

			tasks, err := ReadTasks(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks).To(HaveLen(1))
			Expect(tasks[0].What).To(Equal("P1"))
		})
	}

	It("should parse compression names", func() {
		c, err := ParseCompression("")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(CompressionNone))

		c, err = ParseCompression("LZ4")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(CompressionLZ4))

		_, err = ParseCompression("zip")
		Expect(errors.Is(err, ErrUnknownCompression)).To(BeTrue())
	})

	It("should refuse unknown compressions", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")

		_, _, err := CreateTraceFile(path, Compression("zip"))
		Expect(errors.Is(err, ErrUnknownCompression)).To(BeTrue())

		_, statErr := os.Stat(path)
		Expect(os.IsNotExist(statErr)).To(BeTrue())

		_, err = OpenTraceFile(path, CompressionNone)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("DBTracer", func() {
	It("should store completed tasks", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()
		timeTeller := NewMockTimeTeller(mockCtrl)

		db, err := sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		db.SetMaxOpenConns(1)
		defer db.Close()

		tracer := NewDBTracer(timeTeller, datarecording.NewWithDB(db))

		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(1))
		tracer.StartTask(Task{
			ID: "1", ParentID: "0", Kind: "access", What: "A0", Where: "S",
		})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(2))
		tracer.StartTask(Task{ID: "2", Kind: "access", What: "A1", Where: "S"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInCycle(11))
		tracer.EndTask(Task{ID: "1"})
		tracer.Terminate()

		var (
			what       string
			start, end uint64
			count      int
		)
		Expect(db.QueryRow(
			"SELECT What, StartTime, EndTime FROM "+TaskTableName,
		).Scan(&what, &start, &end)).To(Succeed())
		Expect(db.QueryRow(
			"SELECT COUNT(*) FROM "+TaskTableName,
		).Scan(&count)).To(Succeed())

		Expect(what).To(Equal("A0"))
		Expect(start).To(Equal(uint64(1)))
		Expect(end).To(Equal(uint64(11)))
		Expect(count).To(Equal(1))
	})
})
