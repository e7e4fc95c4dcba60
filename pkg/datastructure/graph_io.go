package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/util"
)

const maxPreallocatedRecords = 1 << 20

// graph file layout (bzip2 compressed, tab separated):
//
//	numNodes numEdges
//	id lat lon name                                              (numNodes lines)
//	from to distance surface curb hasRamp slope width temporary   (numEdges lines)
//
// name and temporary are go-quoted strings.

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := g.Encode(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

// Encode. write the uncompressed graph text to w.
func (g *Graph) Encode(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d\t%d\n", len(g.nodes), len(g.edges))

	for _, n := range g.nodes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, formatFloat(n.Lat), formatFloat(n.Lon), strconv.Quote(n.Name))
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\t%t\t%s\t%s\t%s\n",
			e.From, e.To, formatFloat(e.Distance), e.Surface, formatFloat(e.Curb), e.HasRamp,
			formatFloat(e.Slope), formatFloat(e.Width), strconv.Quote(e.Temporary))
	}

	return w.Flush()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return DecodeGraph(bz)
}

// DecodeGraph. read the uncompressed graph text written by Encode.
func DecodeGraph(in io.Reader) (*Graph, error) {
	br := bufio.NewReader(in)

	line, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("read graph header: %w", err)
	}
	header := strings.Split(line, "\t")
	if len(header) != 2 {
		return nil, util.NewErrorf(util.ErrBadParamInput, "invalid graph header: %q", line)
	}
	numNodes, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, err
	}

	if numNodes < 0 || numEdges < 0 || int64(numNodes) >= int64(INVALID_INDEX) ||
		int64(numEdges) >= int64(INVALID_INDEX) {
		return nil, util.NewErrorf(util.ErrBadParamInput, "invalid graph header counts: %d nodes, %d edges", numNodes, numEdges)
	}

	// the header is not trusted for allocation, a truncated file fails on read
	nodes := make([]Node, 0, min(numNodes, maxPreallocatedRecords))
	for i := 0; i < numNodes; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, fmt.Errorf("read node %d: %w", i, err)
		}
		node, err := parseNodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse node %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}

	edges := make([]Edge, 0, min(numEdges, maxPreallocatedRecords))
	for i := 0; i < numEdges; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, fmt.Errorf("read edge %d: %w", i, err)
		}
		edge, err := parseEdgeLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse edge %d: %w", i, err)
		}
		edges = append(edges, edge)
	}

	return NewGraph(nodes, edges)
}

func parseNodeLine(line string) (Node, error) {
	ff := strings.Split(line, "\t")
	if len(ff) != 4 {
		return Node{}, util.NewErrorf(util.ErrBadParamInput, "invalid node line: %q", line)
	}
	id, err := strconv.ParseInt(ff[0], 10, 64)
	if err != nil {
		return Node{}, err
	}
	lat, err := strconv.ParseFloat(ff[1], 64)
	if err != nil {
		return Node{}, err
	}
	lon, err := strconv.ParseFloat(ff[2], 64)
	if err != nil {
		return Node{}, err
	}
	name, err := strconv.Unquote(ff[3])
	if err != nil {
		return Node{}, err
	}
	return NewNode(id, lat, lon, name), nil
}

func parseEdgeLine(line string) (Edge, error) {
	ff := strings.Split(line, "\t")
	if len(ff) != 9 {
		return Edge{}, util.NewErrorf(util.ErrBadParamInput, "invalid edge line: %q", line)
	}
	from, err := strconv.ParseInt(ff[0], 10, 64)
	if err != nil {
		return Edge{}, err
	}
	to, err := strconv.ParseInt(ff[1], 10, 64)
	if err != nil {
		return Edge{}, err
	}
	floats := make([]float64, 0, 4)
	for _, idx := range []int{2, 4, 6, 7} {
		v, err := strconv.ParseFloat(ff[idx], 64)
		if err != nil {
			return Edge{}, err
		}
		floats = append(floats, v)
	}
	surface, err := strconv.ParseUint(ff[3], 10, 8)
	if err != nil {
		return Edge{}, err
	}
	hasRamp, err := strconv.ParseBool(ff[5])
	if err != nil {
		return Edge{}, err
	}
	temporary, err := strconv.Unquote(ff[8])
	if err != nil {
		return Edge{}, err
	}

	return NewEdge(from, to, floats[0], pkg.SurfaceType(surface), floats[1], hasRamp, floats[2], floats[3], temporary), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
