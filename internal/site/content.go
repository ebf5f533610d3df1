package site

import (
	"fmt"

	"Stratowave/internal/prefs"
)

// SlideCount is the number of slides in the home page slideshow
const SlideCount = 4

// SlideInterval is how long each slide is shown, in milliseconds
const SlideInterval = 5000

// ImageSlot is a placeholder the visitor can replace with an uploaded image
type ImageSlot struct {
	Key             string
	Placeholder     string
	RecommendedSize string
}

// Card is a titled block on a page. Link, when set, makes the body a link.
type Card struct {
	Title       string
	Description string
	Points      []string
	Link        Page
	Image       *ImageSlot
}

// Group is a titled list inside a section
type Group struct {
	Title string
	Items []string
}

// Section is an anchored block with an image beside it
type Section struct {
	ID          string
	Title       string
	Description string
	Image       ImageSlot
	ImageLeft   bool
	Groups      []Group
}

// Showcase is a band of short labels, such as partner brands
type Showcase struct {
	Title string
	Lead  string
	Items []string
}

// Content is everything a page shows besides the shared header and footer
type Content struct {
	Eyebrow    string
	Title      string
	Highlight  string
	Lead       string
	Paragraphs []string
	Banner     *ImageSlot
	Slideshow  []ImageSlot

	CardsTitle string
	CardsLead  string
	Cards      []Card

	Sections  []Section
	Showcases []Showcase
}

func slot(key, placeholder, size string) *ImageSlot {
	return &ImageSlot{Key: key, Placeholder: placeholder, RecommendedSize: size}
}

func slideshow() []ImageSlot {
	slides := make([]ImageSlot, SlideCount)
	for i := range slides {
		slides[i] = ImageSlot{
			Key:             fmt.Sprintf("slideshow-image-%d", i),
			Placeholder:     fmt.Sprintf("Slide %d", i+1),
			RecommendedSize: "1200x500px",
		}
	}
	return slides
}

func focusCard(title, description string, link Page) Card {
	return Card{
		Title:       title,
		Description: description,
		Link:        link,
		Image:       slot(fmt.Sprintf("focus-area-%s-image", link), "Image for "+title, "600x450px"),
	}
}

func telecomCard(title, key string, points ...string) Card {
	return Card{
		Title:  title,
		Points: points,
		Image:  slot(key, "Image for "+title, "600x400px"),
	}
}

// Catalog holds the content of every page
var Catalog = map[Page]Content{
	Home: {
		Title:     "Bridging Strategy and",
		Highlight: "Connectivity",
		Lead:      "We deliver comprehensive infrastructure and digital solutions across telecom, aviation, and emerging digital ecosystems to build resilient, future-ready systems.",
		Slideshow: slideshow(),

		CardsTitle: "Our Focus Areas",
		CardsLead:  "We provide specialized expertise at the intersection of infrastructure and technology.",
		Cards: []Card{
			focusCard("Telecom", "Engineering robust fiber, IP/MPLS, and access networks for national-scale connectivity.", Telecom),
			focusCard("Aviation", "Integrating advanced IT, communication, and automation systems for airports, drones, and cargo terminals.", Aviation),
			focusCard("Digital Services", "Building custom digital platforms, AI/ML solutions, and deep-tech applications to drive operational intelligence.", DigitalServices),
			focusCard("Advisory", "Providing strategic guidance, program governance, and project management for large-scale deployments.", Advisory),
		},
	},

	About: {
		Title: "Pioneering Infrastructure Solutions",
		Paragraphs: []string{
			"Stratowave Solutions LLP delivers comprehensive infrastructure and digital solutions across telecom, aviation, drones, and digital ecosystems, building resilient systems through seamless strategy and technical execution.",
			"We operate at the intersection of policy, regulation, technology, and on-ground execution, enabling public and private sector clients to build scalable, secure, and future-ready infrastructure.",
		},
	},

	Telecom: {
		Title: "Carrier-Grade Execution and Integration",
		Lead:  "We focus on carrier-grade execution, integration, and operations for robust, scalable, and high-performance telecommunication networks.",
		Cards: []Card{
			telecomCard("Network Design & Engineering", "telecom-design-image",
				"IP/MPLS backbone & advanced routing (BGP, OSPF)",
				"GPON-based fiber access networks (FTTx)",
				"DWDM long-haul & metro transmission",
				"MPLS L2/L3 VPN & traffic engineering",
			),
			telecomCard("Deployment & Operations", "telecom-deployment-image",
				"Nationwide optical fiber deployment (metro & rural)",
				"Comprehensive survey, planning, and execution",
				"Last-mile connectivity solutions",
				"24/7 Network Operations Center (NOC) setup & management",
			),
			telecomCard("Service Delivery & Platforms", "telecom-service-image",
				"IPTV, Triple Play & CDN service delivery",
				"Subscriber management platforms (BNG, CGNAT)",
				"Core network services (DNS, DHCP, RADIUS)",
				"Content protection & DRM integration",
			),
			telecomCard("Strategic Infrastructure & Supply", "telecom-strategy-image",
				"Data center & disaster recovery site builds",
				"Go-To-Market (GTM) strategy & business modelling",
				"Turnkey supply of carrier-grade network equipment",
				"Partnerships with leading OEMs",
			),
		},
		Showcases: []Showcase{
			{
				Title: "Our Technology Expertise",
				Lead:  "We leverage our deep industry expertise to deploy and integrate carrier-grade equipment from leading global telecom OEMs.",
				Items: []string{"Cisco", "Juniper", "Nokia", "Huawei", "Ciena", "Fortinet", "MikroTik", "Ubiquiti"},
			},
			{
				Title: "Embedded Supply (Telecom)",
				Lead:  "We provide end-to-end supply of carrier-grade hardware and components to build and maintain robust network infrastructure.",
				Items: []string{"Routers, switches, servers", "Optical fiber & accessories", "DWDM & transmission equipment", "Network security appliances"},
			},
		},
	},

	Aviation: {
		Eyebrow: "Aviation Solutions",
		Title:   "Integrating Digital Systems for Modern Aviation",
		Lead:    "We provide specialized digital infrastructure and aerial intelligence solutions for airports, cargo logistics, and critical asset monitoring.",
		Sections: []Section{
			{
				ID:          "airports",
				Title:       "Airport Digital Systems",
				Description: "Deployment and management of core ICT infrastructure for modern airport operations.",
				Image:       *slot("aviation-airports-image", "Insert image of modern airport terminal / control tower here", "800x600px"),
				Groups: []Group{
					{"Capabilities", []string{
						"Airport ICT infrastructure deployment",
						"Structured cabling & fiber backbone",
						"Surveillance & communication systems",
						"Terminal IT & operational networks",
						"Command & control centers",
						"System integration across stakeholders",
						"O&M of airport digital infrastructure",
					}},
					{"Embedded Supply", []string{
						"Networking hardware",
						"Surveillance systems",
						"Servers & storage",
						"Airport IT software platforms",
					}},
				},
			},
			{
				ID:          "cargo",
				Title:       "Cargo & Logistics Systems",
				Description: "Automation and IT systems for efficient and transparent air cargo operations.",
				Image:       *slot("aviation-cargo-image", "Insert image of automated cargo terminal or logistics here", "800x600px"),
				ImageLeft:   true,
				Groups: []Group{
					{"Capabilities", []string{
						"Cargo terminal automation systems",
						"Warehouse & yard management integration",
						"Cargo tracking & visibility platforms",
						"Automated data capture & reporting",
						"Integration with customs & regulatory systems",
						"IT infrastructure for air cargo operations",
						"Operations & maintenance of cargo digital systems",
					}},
				},
			},
			{
				ID:          "daas",
				Title:       "Drone as a Service (DaaS)",
				Description: "Managed drone operations focused on safety, efficiency, and affordability, delivering intelligence-ready data powered by AI and computer vision for enterprises and infrastructure owners.",
				Image:       *slot("aviation-daas-image", "Insert image of drone inspecting power lines or infrastructure here", "800x600px"),
				Groups: []Group{
					{"Use Cases: Energy & Infrastructure", []string{
						"Transmission line inspection & solar/wind asset monitoring",
						"Roads, bridges, corridors, rail & metro inspections",
						"Construction progress tracking & site surveys",
					}},
					{"Use Cases: Telecom & Mining", []string{
						"Telecom tower and fiber route surveys",
						"Telecom asset health inspection",
						"Mine surveys, volumetric analysis, and stockpile management",
					}},
					{"Use Cases: Urban, Industrial & Emergency", []string{
						"Smart city mapping & industrial plant inspections",
						"Safety & compliance audits",
						"Disaster damage assessment & rapid mapping",
					}},
				},
			},
		},
	},

	DigitalServices: {
		Eyebrow: "Digital Services",
		Title:   "Operational & Automation Platforms",
		Lead:    "We build operational and automation-centric digital platforms that provide visibility, control, and efficiency for complex infrastructure environments.",
		Cards: []Card{
			{Title: "OSS/BSS Systems", Description: "Comprehensive operational and business support systems to manage networks, services, and customers efficiently."},
			{Title: "Network Monitoring Dashboards", Description: "Real-time, intuitive dashboards for complete visibility into network performance and health."},
			{Title: "CRM", Description: "Custom CRM solutions to manage customer relationships, sales pipelines, and service delivery."},
			{Title: "GIS Based Asset Mapping", Description: "Geospatial platforms for mapping, tracking, and managing critical infrastructure assets."},
			{Title: "Staff Monitoring & Payroll Automation", Description: "Integrated systems for workforce management, performance tracking, and automated payroll processing."},
			{Title: "Web & Mobile Applications", Description: "Bespoke applications designed to enhance operational control and user engagement."},
			{Title: "Automation & Orchestration Platforms", Description: "Powerful platforms to automate complex workflows and orchestrate services across diverse systems."},
			{Title: "Cloud-Native Architectures", Description: "Designing and implementing scalable, resilient solutions using modern cloud-native principles."},
		},
	},

	Advisory: {
		Title:  "Execution-Enabling Advisory Services",
		Lead:   "We provide execution-enabling advisory and program support services to navigate complex project landscapes and ensure successful outcomes.",
		Banner: slot("advisory-main-image", "Image representing strategic advisory or planning", "1200x400px"),
		Cards: []Card{
			{Title: "Feasibility & DPR Preparation", Description: "Conducting comprehensive feasibility studies and preparing Detailed Project Reports (DPR) to establish project viability and support funding proposals."},
			{Title: "Regulatory & Compliance", Description: "Providing expert guidance to navigate complex regulatory landscapes and ensure full compliance with telecom, aviation, and government policies."},
			{Title: "Technology & Solution Design", Description: "Performing in-depth technology evaluations and creating vendor-agnostic solution designs to build optimal, future-ready infrastructure."},
			{Title: "Bid & Tender Management", Description: "Managing the end-to-end bid process, from drafting RFPs and tenders to evaluating proposals to secure the best partners."},
			{Title: "Technical Staffing & Resource Deployment", Description: "Deploying skilled technical professionals and subject matter experts to augment your teams and accelerate project execution."},
			{Title: "Project & Program Management", Description: "Delivering robust PMO services to oversee large-scale deployments, manage risks, and ensure projects are delivered on time and within budget."},
			{Title: "Contracts Management", Description: "Expert management of the entire contract lifecycle, from drafting and negotiation to execution and compliance, ensuring risk mitigation and value optimization."},
			{Title: "Revenue Management", Description: "Implementing comprehensive revenue assurance, billing, and financial management frameworks to prevent leakage, optimize pricing, and maximize profitability."},
			{Title: "Government & PSU Engagement", Description: "Facilitating strategic engagement with government bodies and Public Sector Undertakings (PSUs) to streamline approvals and foster collaboration."},
		},
	},

	Contact: {
		Eyebrow: "Contact",
		Title:   "Get in Touch",
		Lead:    "Your vision, our expertise. Let’s collaborate and create something extraordinary together.",
	},
}

// ImageKeys returns every image slot key used by the site, logo included
func ImageKeys() []string {
	keys := []string{prefs.LogoKey}
	for _, p := range All {
		c := Catalog[p]
		for _, s := range c.Slideshow {
			keys = append(keys, s.Key)
		}
		if c.Banner != nil {
			keys = append(keys, c.Banner.Key)
		}
		for _, card := range c.Cards {
			if card.Image != nil {
				keys = append(keys, card.Image.Key)
			}
		}
		for _, s := range c.Sections {
			keys = append(keys, s.Image.Key)
		}
	}
	return keys
}
